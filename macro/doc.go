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

// Package macro implements a script runner for the machine. A script drives
// the machine one cycle at a time and reads and writes the CIA registers in
// between. It is used by the SCRIPT and STEP modes of the command line and as
// a timing harness in tests.
//
// The first line of a script must be the header "gopher6526macro". The second
// line is a version string, which is currently ignored.
//
// The macro language is very simple and does not implement any flow control
// except basic loops.
//
//	DO loopCt [loopName]
//		...
//	LOOP
//
// The 'loopName' parameter is optional. When a loop is named the current
// counter value can be referenced as a variable with the % symbol, wherever a
// value is expected. For example, if a loop has been given the name "ct":
//
//	POKE CIA1.TALO %ct
//
// Loops can be nested.
//
// The instructions that operate on the machine are:
//
//	STEP [n]                  step the machine n cycles (default 1)
//	POKE addr value           write a register as the CPU would
//	READ addr                 read a register as the CPU would and print it
//	PEEK addr                 print a register without side effects
//	EXPECT addr value         fail the script if a register has another value
//	EXPECT IRQ|NMI 0|1        fail the script if a line is in another state
//	DRIVE chip port mask val  drive the input pins of a port
//	FLAG chip                 pulse the FLAG pin of a chip low
//	LINES                     print the state of the interrupt lines
//	RESET                     reset the machine
//	QUIT                      end the script
//
// Addresses can be given as a number or as a register symbol, for example
// "CIA1.ICR". Numbers can be given in decimal or in hex, with a leading '$'
// or '0x'. Ports are named PA, PB, FLAG, CNT and SP.
//
// Any errors in a macro script will result in a log entry and the termination
// of the macro execution. Errors are returned with the ScriptError pattern.
//
// Lines can be commented by prefixing the line with two dashes (--). Leading
// and trailing white space is ignored.
package macro
