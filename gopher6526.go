// This file is part of Gopher6526.
//
// Gopher6526 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher6526 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher6526.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher6526/curated"
	"github.com/jetsetilly/gopher6526/digest"
	"github.com/jetsetilly/gopher6526/environment"
	"github.com/jetsetilly/gopher6526/govern"
	"github.com/jetsetilly/gopher6526/hardware"
	"github.com/jetsetilly/gopher6526/hardware/clocks"
	"github.com/jetsetilly/gopher6526/hardware/peripherals/datasette"
	"github.com/jetsetilly/gopher6526/hardware/preferences"
	"github.com/jetsetilly/gopher6526/logger"
	"github.com/jetsetilly/gopher6526/macro"
	"github.com/jetsetilly/gopher6526/modalflag"
	"github.com/jetsetilly/gopher6526/paths"
	"github.com/jetsetilly/gopher6526/prefs"
	"github.com/jetsetilly/gopher6526/recorder"
	"github.com/jetsetilly/gopher6526/statsview"
	"github.com/jetsetilly/gopher6526/terminal"
	"github.com/jetsetilly/gopher6526/version"
	"github.com/jetsetilly/gopher6526/wavwriter"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest

	// interrupt signals are forwarded to the running mode on this channel. a
	// second interrupt before the mode has ended quits immediately
	interrupt chan bool
}

// #mainthread
func main() {
	sync := &mainSync{
		state:     make(chan stateRequest),
		interrupt: make(chan bool, 1),
	}

	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	for !done {
		select {
		case <-intChan:
			select {
			case sync.interrupt <- true:
			default:
				fmt.Println("\r")
				done = true
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])

	p, err := execute(md, os.Stdout, sync.interrupt)
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// execute the mode selected by the command line. the ParseResult is only
// ParseContinue if the mode was run.
func execute(md *modalflag.Modes, output io.Writer, interrupt <-chan bool) (modalflag.ParseResult, error) {
	md.AddSubModes("RUN", "STEP", "SCRIPT", "DUMP", "VERSION")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return p, err
	}

	switch md.Mode() {
	case "RUN":
		return run(md, output, interrupt)
	case "STEP":
		return step(md, output, interrupt)
	case "SCRIPT":
		return script(md, output, interrupt)
	case "DUMP":
		return dump(md, output)
	case "VERSION":
		return showVersion(md, output)
	}

	return modalflag.ParseContinue, nil
}

// flags common to all modes that create a machine.
type machineFlags struct {
	prefs     *string
	prefsFile *string
	standard  *string
	log       *bool
}

func addMachineFlags(md *modalflag.Modes) machineFlags {
	return machineFlags{
		prefs:     md.AddString("prefs", "", "preferences for this session. eg. \"cia.revision::8521; cia.tod.mains::60\""),
		prefsFile: md.AddString("prefsfile", "", "use named preferences file"),
		standard:  md.AddString("standard", "", "clock standard: PAL or NTSC. overrides preferences"),
		log:       md.AddBool("log", false, "echo log to stdout"),
	}
}

func newMachine(mf machineFlags, output io.Writer) (*hardware.Machine, error) {
	if *mf.log {
		logger.SetEcho(output, false)
	} else {
		logger.SetEcho(nil, false)
	}

	prefs.PushCommandLineStack(*mf.prefs)

	var p *preferences.Preferences
	var err error
	if *mf.prefsFile != "" {
		p, err = preferences.NewPreferencesFromFile(*mf.prefsFile)
	} else {
		p, err = preferences.NewPreferences()
	}
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	if *mf.standard != "" {
		clock, mains, ok := clocks.Lookup(strings.ToUpper(*mf.standard))
		if !ok {
			return nil, curated.Errorf("unknown clock standard (%s)", *mf.standard)
		}
		if err := p.Clock.Set(clock); err != nil {
			return nil, err
		}
		if err := p.Mains.Set(mains); err != nil {
			return nil, err
		}
	}

	env := environment.NewEnvironment(environment.MainEmulation, p)
	m := hardware.NewMachine(env)
	m.Reset()

	logger.Logf(env, "machine", "%s", p)

	return m, nil
}

func run(md *modalflag.Modes, output io.Writer, interrupt <-chan bool) (modalflag.ParseResult, error) {
	md.NewMode()

	mf := addMachineFlags(md)
	cycles := md.AddUint64("cycles", 0, "stop after number of cycles. zero runs until interrupted")
	tape := md.AddString("tape", "", "play WAV or MP3 file into the FLAG pin of CIA1")
	wav := md.AddString("wav", "", "record CIA2 port B timer output to wav file")
	record := md.AddString("record", "", "record input events to file")
	playback := md.AddString("playback", "", "playback input events from file")
	stats := md.AddBool("statsview", false, "run stats server")
	hash := md.AddBool("digest", false, "print digest of register state on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return p, err
	}

	if *record != "" && *playback != "" {
		return modalflag.ParseContinue, curated.Errorf("cannot record and playback at the same time")
	}

	m, err := newMachine(mf, output)
	if err != nil {
		return modalflag.ParseContinue, err
	}

	if *stats {
		statsview.Launch(output, "")
	}

	if *record != "" {
		rec, err := recorder.NewRecorder(*record, m)
		if err != nil {
			return modalflag.ParseContinue, err
		}
		defer func() {
			if err := rec.End(); err != nil {
				logger.Log(m.Env, "recorder", err.Error())
			}
		}()
	}

	if *playback != "" {
		plb, err := recorder.NewPlayback(*playback)
		if err != nil {
			return modalflag.ParseContinue, err
		}
		err = plb.AttachToMachine(m)
		if err != nil {
			return modalflag.ParseContinue, err
		}
	}

	// the digest is attached after any recorder or playback because they
	// reset the machine
	var dig *digest.Registers
	if *hash {
		dig = digest.NewRegisters(m)
		m.AttachPeripheral(dig)
	}

	if *tape != "" {
		dat, err := datasette.NewDatasette(m.Env, m, *tape)
		if err != nil {
			return modalflag.ParseContinue, err
		}
		m.AttachPeripheral(dat)
		dat.Play()
		fmt.Fprintf(output, "%s\n", dat)
	}

	if *wav != "" {
		aw, err := wavwriter.New(m.Env, *wav)
		if err != nil {
			return modalflag.ParseContinue, err
		}
		err = m.AttachMonitor(2, aw)
		if err != nil {
			return modalflag.ParseContinue, err
		}
		m.AttachPeripheral(aw)
		defer func() {
			if err := aw.Close(); err != nil {
				logger.Log(m.Env, "wavwriter", err.Error())
			}
		}()
	}

	brake := 0
	err = m.Run(func() (govern.State, error) {
		if *cycles > 0 && m.Cycle() >= *cycles {
			return govern.Ending, nil
		}

		brake++
		if brake < hardware.PerformanceBrake {
			return govern.Running, nil
		}
		brake = 0

		select {
		case <-interrupt:
			return govern.Ending, nil
		default:
		}
		return govern.Running, nil
	})
	if err != nil {
		return modalflag.ParseContinue, err
	}

	fmt.Fprintf(output, "%s\n", m)
	if dig != nil {
		fmt.Fprintf(output, "%s\n", dig.Hash())
	}

	return modalflag.ParseContinue, nil
}

func step(md *modalflag.Modes, output io.Writer, interrupt <-chan bool) (modalflag.ParseResult, error) {
	md.NewMode()

	mf := addMachineFlags(md)
	device := md.AddString("tty", terminal.DefaultDevice, "terminal device to read keys from")
	watch := md.AddAddress("watch", 0, "register to print after every step")
	md.AdditionalHelp(terminal.NewKeymap().Help())

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return p, err
	}

	m, err := newMachine(mf, output)
	if err != nil {
		return modalflag.ParseContinue, err
	}

	kb, err := terminal.Open(*device)
	if err != nil {
		return modalflag.ParseContinue, err
	}
	defer kb.Close()

	km := terminal.NewKeymap()
	fmt.Fprint(output, km.Help())

	printWatch := func() error {
		if *watch == 0 {
			return nil
		}
		v, err := m.Peek(*watch)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%d: %#02x %s\n", m.Cycle(), v, m.Lines)
		return nil
	}

	state := govern.Paused
	brake := 0

	for state != govern.Ending {
		var key byte
		var ok bool

		if state == govern.Running {
			if err := m.Step(); err != nil {
				return modalflag.ParseContinue, err
			}

			brake++
			if brake < hardware.PerformanceBrake {
				continue // for loop
			}
			brake = 0

			select {
			case key = <-kb.Keys():
				ok = true
			case err := <-kb.Errors():
				return modalflag.ParseContinue, err
			case <-interrupt:
				state = govern.Ending
			default:
			}
		} else {
			select {
			case key = <-kb.Keys():
				ok = true
			case err := <-kb.Errors():
				return modalflag.ParseContinue, err
			case <-interrupt:
				state = govern.Ending
			}
		}

		if !ok {
			continue // for loop
		}

		a := km.Translate(key)
		switch a.Command {
		case terminal.StepCycle:
			if state == govern.Paused {
				if err := m.Step(); err != nil {
					return modalflag.ParseContinue, err
				}
				if err := printWatch(); err != nil {
					return modalflag.ParseContinue, err
				}
			}
		case terminal.ToggleRun:
			if state == govern.Running {
				state = govern.Paused
				fmt.Fprintf(output, "paused at cycle %d\n", m.Cycle())
			} else {
				state = govern.Running
			}
		case terminal.DriveInput, terminal.Flag:
			for _, ev := range a.Events {
				if err := m.Input.PushEvent(ev); err != nil {
					logger.Log(m.Env, "terminal", err.Error())
				}
			}
		case terminal.Status:
			fmt.Fprintf(output, "%s\n", m)
		case terminal.Reset:
			m.Reset()
		case terminal.Quit:
			state = govern.Ending
		}
	}

	return modalflag.ParseContinue, nil
}

func script(md *modalflag.Modes, output io.Writer, interrupt <-chan bool) (modalflag.ParseResult, error) {
	md.NewMode()

	mf := addMachineFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return p, err
	}

	if len(md.RemainingArgs()) != 1 {
		return modalflag.ParseContinue, curated.Errorf("a single macro file is required for %s mode", md)
	}

	m, err := newMachine(mf, output)
	if err != nil {
		return modalflag.ParseContinue, err
	}

	mcr, err := macro.NewMacro(md.GetArg(0), m, output)
	if err != nil {
		return modalflag.ParseContinue, err
	}

	mcr.OnStep = func() error {
		select {
		case <-interrupt:
			return curated.Errorf("interrupted at cycle %d", m.Cycle())
		default:
		}
		return nil
	}

	return modalflag.ParseContinue, mcr.Run()
}

func dump(md *modalflag.Modes, output io.Writer) (modalflag.ParseResult, error) {
	md.NewMode()

	mf := addMachineFlags(md)
	cycles := md.AddUint64("cycles", 0, "number of cycles to run before dumping")
	md.AdditionalHelp("the machine state is written as a graphviz dot file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return p, err
	}

	m, err := newMachine(mf, output)
	if err != nil {
		return modalflag.ParseContinue, err
	}

	if len(md.RemainingArgs()) > 0 {
		mcr, err := macro.NewMacro(md.GetArg(0), m, nil)
		if err != nil {
			return modalflag.ParseContinue, err
		}
		if err := mcr.Run(); err != nil {
			return modalflag.ParseContinue, err
		}
	}

	if err := m.RunForCycles(*cycles, nil); err != nil {
		return modalflag.ParseContinue, err
	}

	fn := paths.UniqueFilename("dump", "") + ".dot"
	f, err := os.Create(fn)
	if err != nil {
		return modalflag.ParseContinue, curated.Errorf("dump: %v", err)
	}

	memviz.Map(f, m.Snapshot())

	if err := f.Close(); err != nil {
		return modalflag.ParseContinue, curated.Errorf("dump: %v", err)
	}

	fmt.Fprintf(output, "machine state at cycle %d written to %s\n", m.Cycle(), fn)

	return modalflag.ParseContinue, nil
}

func showVersion(md *modalflag.Modes, output io.Writer) (modalflag.ParseResult, error) {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return p, err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(output, "%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Fprintf(output, "%s\n", r)
	}

	return modalflag.ParseContinue, nil
}
