package mos6502

// decodeEntry pairs an addressing micro-program with the operation it
// drives. decodeTable is the flat 256-entry dispatch table built once
// at init time - the Go stand-in for the per-opcode switch/case in
// NESterpiece's CPU::decode.
type decodeEntry struct {
	mnemonic   string
	addressing microStep
	operation  opFunc
}

var decodeTable [256]decodeEntry

func (c *CPU) decode(opcode uint8) {
	c.PC++
	e := decodeTable[opcode]
	c.state = execState{cycle: 1, addressing: e.addressing, operation: e.operation}
}

// Mnemonic returns the instruction mnemonic for an opcode byte, for
// debugging/disassembly only.
func Mnemonic(opcode uint8) string {
	return decodeTable[opcode].mnemonic
}

func init() {
	// Illegal/unimplemented opcodes run as deterministic 2-cycle
	// NOPs rather than halting the CPU.
	for i := range decodeTable {
		decodeTable[i] = decodeEntry{"NOP*", admImplied(), opNOP}
	}

	set := func(op uint8, mnemonic string, addr microStep, fn opFunc) {
		decodeTable[op] = decodeEntry{mnemonic, addr, fn}
	}

	// ADC
	set(0x69, "ADC", admImmediate(), opADC)
	set(0x65, "ADC", admZeroPage(kindRead), opADC)
	set(0x75, "ADC", admZeroPageIndexed(regX, kindRead), opADC)
	set(0x6D, "ADC", admAbsolute(kindRead), opADC)
	set(0x7D, "ADC", admAbsoluteIndexed(regX, kindRead), opADC)
	set(0x79, "ADC", admAbsoluteIndexed(regY, kindRead), opADC)
	set(0x61, "ADC", admIndexedIndirectX(kindRead), opADC)
	set(0x71, "ADC", admIndirectIndexedY(kindRead), opADC)

	// AND
	set(0x29, "AND", admImmediate(), opAND)
	set(0x25, "AND", admZeroPage(kindRead), opAND)
	set(0x35, "AND", admZeroPageIndexed(regX, kindRead), opAND)
	set(0x2D, "AND", admAbsolute(kindRead), opAND)
	set(0x3D, "AND", admAbsoluteIndexed(regX, kindRead), opAND)
	set(0x39, "AND", admAbsoluteIndexed(regY, kindRead), opAND)
	set(0x21, "AND", admIndexedIndirectX(kindRead), opAND)
	set(0x31, "AND", admIndirectIndexedY(kindRead), opAND)

	// ASL
	set(0x0A, "ASL", admAccumulator(), opASLAcc)
	set(0x06, "ASL", admZeroPageRMW(), opASL)
	set(0x16, "ASL", admZeroPageXRMW(), opASL)
	set(0x0E, "ASL", admAbsoluteRMW(), opASL)
	set(0x1E, "ASL", admAbsoluteXRMW(), opASL)

	// Branches
	set(0x90, "BCC", admRelative(STATUS_FLAG_CARRY, false), nil)
	set(0xB0, "BCS", admRelative(STATUS_FLAG_CARRY, true), nil)
	set(0xF0, "BEQ", admRelative(STATUS_FLAG_ZERO, true), nil)
	set(0x30, "BMI", admRelative(STATUS_FLAG_NEGATIVE, true), nil)
	set(0xD0, "BNE", admRelative(STATUS_FLAG_ZERO, false), nil)
	set(0x10, "BPL", admRelative(STATUS_FLAG_NEGATIVE, false), nil)
	set(0x50, "BVC", admRelative(STATUS_FLAG_OVERFLOW, false), nil)
	set(0x70, "BVS", admRelative(STATUS_FLAG_OVERFLOW, true), nil)

	set(0x24, "BIT", admZeroPage(kindRead), opBIT)
	set(0x2C, "BIT", admAbsolute(kindRead), opBIT)

	set(0x00, "BRK", admBRK(), nil)

	set(0x18, "CLC", admImplied(), opCLC)
	set(0xD8, "CLD", admImplied(), opCLD)
	set(0x58, "CLI", admImplied(), opCLI)
	set(0xB8, "CLV", admImplied(), opCLV)

	// CMP
	set(0xC9, "CMP", admImmediate(), opCMP)
	set(0xC5, "CMP", admZeroPage(kindRead), opCMP)
	set(0xD5, "CMP", admZeroPageIndexed(regX, kindRead), opCMP)
	set(0xCD, "CMP", admAbsolute(kindRead), opCMP)
	set(0xDD, "CMP", admAbsoluteIndexed(regX, kindRead), opCMP)
	set(0xD9, "CMP", admAbsoluteIndexed(regY, kindRead), opCMP)
	set(0xC1, "CMP", admIndexedIndirectX(kindRead), opCMP)
	set(0xD1, "CMP", admIndirectIndexedY(kindRead), opCMP)

	set(0xE0, "CPX", admImmediate(), opCPX)
	set(0xE4, "CPX", admZeroPage(kindRead), opCPX)
	set(0xEC, "CPX", admAbsolute(kindRead), opCPX)

	set(0xC0, "CPY", admImmediate(), opCPY)
	set(0xC4, "CPY", admZeroPage(kindRead), opCPY)
	set(0xCC, "CPY", admAbsolute(kindRead), opCPY)

	// DEC
	set(0xC6, "DEC", admZeroPageRMW(), opDEC)
	set(0xD6, "DEC", admZeroPageXRMW(), opDEC)
	set(0xCE, "DEC", admAbsoluteRMW(), opDEC)
	set(0xDE, "DEC", admAbsoluteXRMW(), opDEC)
	set(0xCA, "DEX", admImplied(), opDEX)
	set(0x88, "DEY", admImplied(), opDEY)

	// EOR
	set(0x49, "EOR", admImmediate(), opEOR)
	set(0x45, "EOR", admZeroPage(kindRead), opEOR)
	set(0x55, "EOR", admZeroPageIndexed(regX, kindRead), opEOR)
	set(0x4D, "EOR", admAbsolute(kindRead), opEOR)
	set(0x5D, "EOR", admAbsoluteIndexed(regX, kindRead), opEOR)
	set(0x59, "EOR", admAbsoluteIndexed(regY, kindRead), opEOR)
	set(0x41, "EOR", admIndexedIndirectX(kindRead), opEOR)
	set(0x51, "EOR", admIndirectIndexedY(kindRead), opEOR)

	// INC
	set(0xE6, "INC", admZeroPageRMW(), opINC)
	set(0xF6, "INC", admZeroPageXRMW(), opINC)
	set(0xEE, "INC", admAbsoluteRMW(), opINC)
	set(0xFE, "INC", admAbsoluteXRMW(), opINC)
	set(0xE8, "INX", admImplied(), opINX)
	set(0xC8, "INY", admImplied(), opINY)

	set(0x4C, "JMP", admAbsoluteJMP(), nil)
	set(0x6C, "JMP", admAbsoluteIndirectJMP(), nil)
	set(0x20, "JSR", admJSR(), nil)

	// LDA
	set(0xA9, "LDA", admImmediate(), opLDA)
	set(0xA5, "LDA", admZeroPage(kindRead), opLDA)
	set(0xB5, "LDA", admZeroPageIndexed(regX, kindRead), opLDA)
	set(0xAD, "LDA", admAbsolute(kindRead), opLDA)
	set(0xBD, "LDA", admAbsoluteIndexed(regX, kindRead), opLDA)
	set(0xB9, "LDA", admAbsoluteIndexed(regY, kindRead), opLDA)
	set(0xA1, "LDA", admIndexedIndirectX(kindRead), opLDA)
	set(0xB1, "LDA", admIndirectIndexedY(kindRead), opLDA)

	// LDX
	set(0xA2, "LDX", admImmediate(), opLDX)
	set(0xA6, "LDX", admZeroPage(kindRead), opLDX)
	set(0xB6, "LDX", admZeroPageIndexed(regY, kindRead), opLDX)
	set(0xAE, "LDX", admAbsolute(kindRead), opLDX)
	set(0xBE, "LDX", admAbsoluteIndexed(regY, kindRead), opLDX)

	// LDY
	set(0xA0, "LDY", admImmediate(), opLDY)
	set(0xA4, "LDY", admZeroPage(kindRead), opLDY)
	set(0xB4, "LDY", admZeroPageIndexed(regX, kindRead), opLDY)
	set(0xAC, "LDY", admAbsolute(kindRead), opLDY)
	set(0xBC, "LDY", admAbsoluteIndexed(regX, kindRead), opLDY)

	// LSR
	set(0x4A, "LSR", admAccumulator(), opLSRAcc)
	set(0x46, "LSR", admZeroPageRMW(), opLSR)
	set(0x56, "LSR", admZeroPageXRMW(), opLSR)
	set(0x4E, "LSR", admAbsoluteRMW(), opLSR)
	set(0x5E, "LSR", admAbsoluteXRMW(), opLSR)

	set(0xEA, "NOP", admImplied(), opNOP)

	// ORA
	set(0x09, "ORA", admImmediate(), opORA)
	set(0x05, "ORA", admZeroPage(kindRead), opORA)
	set(0x15, "ORA", admZeroPageIndexed(regX, kindRead), opORA)
	set(0x0D, "ORA", admAbsolute(kindRead), opORA)
	set(0x1D, "ORA", admAbsoluteIndexed(regX, kindRead), opORA)
	set(0x19, "ORA", admAbsoluteIndexed(regY, kindRead), opORA)
	set(0x01, "ORA", admIndexedIndirectX(kindRead), opORA)
	set(0x11, "ORA", admIndirectIndexedY(kindRead), opORA)

	set(0x48, "PHA", admPush(), opPHA)
	set(0x08, "PHP", admPush(), opPHP)
	set(0x68, "PLA", admPull(), opPLA)
	set(0x28, "PLP", admPull(), opPLP)

	// ROL
	set(0x2A, "ROL", admAccumulator(), opROLAcc)
	set(0x26, "ROL", admZeroPageRMW(), opROL)
	set(0x36, "ROL", admZeroPageXRMW(), opROL)
	set(0x2E, "ROL", admAbsoluteRMW(), opROL)
	set(0x3E, "ROL", admAbsoluteXRMW(), opROL)

	// ROR
	set(0x6A, "ROR", admAccumulator(), opRORAcc)
	set(0x66, "ROR", admZeroPageRMW(), opROR)
	set(0x76, "ROR", admZeroPageXRMW(), opROR)
	set(0x6E, "ROR", admAbsoluteRMW(), opROR)
	set(0x7E, "ROR", admAbsoluteXRMW(), opROR)

	set(0x40, "RTI", admRTI(), nil)
	set(0x60, "RTS", admRTS(), nil)

	// SBC
	set(0xE9, "SBC", admImmediate(), opSBC)
	set(0xE5, "SBC", admZeroPage(kindRead), opSBC)
	set(0xF5, "SBC", admZeroPageIndexed(regX, kindRead), opSBC)
	set(0xED, "SBC", admAbsolute(kindRead), opSBC)
	set(0xFD, "SBC", admAbsoluteIndexed(regX, kindRead), opSBC)
	set(0xF9, "SBC", admAbsoluteIndexed(regY, kindRead), opSBC)
	set(0xE1, "SBC", admIndexedIndirectX(kindRead), opSBC)
	set(0xF1, "SBC", admIndirectIndexedY(kindRead), opSBC)

	set(0x38, "SEC", admImplied(), opSEC)
	set(0xF8, "SED", admImplied(), opSED)
	set(0x78, "SEI", admImplied(), opSEI)

	// STA
	set(0x85, "STA", admZeroPage(kindWrite), opSTA)
	set(0x95, "STA", admZeroPageIndexed(regX, kindWrite), opSTA)
	set(0x8D, "STA", admAbsolute(kindWrite), opSTA)
	set(0x9D, "STA", admAbsoluteIndexed(regX, kindWrite), opSTA)
	set(0x99, "STA", admAbsoluteIndexed(regY, kindWrite), opSTA)
	set(0x81, "STA", admIndexedIndirectX(kindWrite), opSTA)
	set(0x91, "STA", admIndirectIndexedY(kindWrite), opSTA)

	set(0x86, "STX", admZeroPage(kindWrite), opSTX)
	set(0x96, "STX", admZeroPageIndexed(regY, kindWrite), opSTX)
	set(0x8E, "STX", admAbsolute(kindWrite), opSTX)

	set(0x84, "STY", admZeroPage(kindWrite), opSTY)
	set(0x94, "STY", admZeroPageIndexed(regX, kindWrite), opSTY)
	set(0x8C, "STY", admAbsolute(kindWrite), opSTY)

	set(0xAA, "TAX", admImplied(), opTAX)
	set(0xA8, "TAY", admImplied(), opTAY)
	set(0xBA, "TSX", admImplied(), opTSX)
	set(0x8A, "TXA", admImplied(), opTXA)
	set(0x9A, "TXS", admImplied(), opTXS)
	set(0x98, "TYA", admImplied(), opTYA)
}
