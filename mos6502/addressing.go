package mos6502

// Addressing-mode micro-programs. Each one is a factory that returns a
// microStep closure - the Go stand-in for NESterpiece's C++ template
// instantiations (adm_zero_page<Read> vs adm_zero_page<Write>, and so
// on): the closure captures the instrKind/regSelector once, at
// decode-table build time, rather than receiving them per instruction;
// modes with read and write variants still test the captured kind on
// the cycle that performs the access.

func admImplied() microStep {
	return func(c *CPU, bus Bus) {
		if c.state.cycle == 1 {
			bus.Read(c.PC)
			c.state.operation(c, bus)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admImmediate() microStep {
	return func(c *CPU, bus Bus) {
		if c.state.cycle == 1 {
			c.state.data = bus.Read(c.PC)
			c.PC++
			c.state.operation(c, bus)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admZeroPage(kind instrKind) microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			if kind == kindRead {
				c.state.data = bus.Read(c.state.address)
				c.state.operation(c, bus)
			} else {
				c.state.operation(c, bus)
				bus.Write(c.state.address, c.state.data)
			}
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admZeroPageRMW() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			c.state.data = bus.Read(c.state.address)
		case 3:
			bus.Write(c.state.address, c.state.data)
			c.state.operation(c, bus)
		case 4:
			bus.Write(c.state.address, c.state.data)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admZeroPageIndexed(sel regSelector, kind instrKind) microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			bus.Read(c.state.address)
			c.state.address = (c.state.address + uint16(sel(c))) & 0xFF
		case 3:
			if kind == kindRead {
				c.state.data = bus.Read(c.state.address)
				c.state.operation(c, bus)
			} else {
				c.state.operation(c, bus)
				bus.Write(c.state.address, c.state.data)
			}
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admZeroPageXRMW() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			bus.Read(c.state.address)
			c.state.address = (c.state.address + uint16(c.X)) & 0xFF
		case 3:
			c.state.data = bus.Read(c.state.address)
		case 4:
			bus.Write(c.state.address, c.state.data)
			c.state.operation(c, bus)
		case 5:
			bus.Write(c.state.address, c.state.data)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admAbsolute(kind instrKind) microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			c.state.address |= uint16(bus.Read(c.PC)) << 8
			c.PC++
		case 3:
			if kind == kindRead {
				c.state.data = bus.Read(c.state.address)
				c.state.operation(c, bus)
			} else {
				c.state.operation(c, bus)
				bus.Write(c.state.address, c.state.data)
			}
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admAbsoluteRMW() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			c.state.address |= uint16(bus.Read(c.PC)) << 8
			c.PC++
		case 3:
			c.state.data = bus.Read(c.state.address)
		case 4:
			bus.Write(c.state.address, c.state.data)
			c.state.operation(c, bus)
		case 5:
			bus.Write(c.state.address, c.state.data)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admAbsoluteJMP() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			c.state.address |= uint16(bus.Read(c.PC)) << 8
			c.PC = c.state.address
			c.state.complete = true
		}
		c.state.cycle++
	}
}

// admAbsoluteIndirectJMP implements JMP ($addr), including the famous
// page-wrap bug: if the low byte of the pointer is $FF, the high byte
// is fetched from the start of the same page rather than the next
// one.
func admAbsoluteIndirectJMP() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			c.state.address |= uint16(bus.Read(c.PC)) << 8
			c.PC++
		case 3:
			c.state.data = bus.Read(c.state.address)
		case 4:
			hiAddr := (c.state.address & 0xFF00) | ((c.state.address + 1) & 0xFF)
			hi := bus.Read(hiAddr)
			c.PC = uint16(hi)<<8 | uint16(c.state.data)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admAbsoluteIndexed(sel regSelector, kind instrKind) microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			low := c.state.address
			idx := uint16(sel(c))
			c.state.address = (low + idx) & 0xFF
			if low+idx > 0xFF {
				c.state.pageCrossed = true
			}
			c.state.address |= uint16(bus.Read(c.PC)) << 8
			c.PC++
		case 3:
			c.state.data = bus.Read(c.state.address)
			if c.state.pageCrossed {
				hi := (c.state.address >> 8) + 1
				c.state.address = (c.state.address & 0xFF) | hi<<8
			} else if kind == kindRead {
				c.state.operation(c, bus)
				c.state.complete = true
			}
		case 4:
			if kind == kindRead {
				c.state.data = bus.Read(c.state.address)
				c.state.operation(c, bus)
			} else {
				c.state.operation(c, bus)
				bus.Write(c.state.address, c.state.data)
			}
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admAbsoluteXRMW() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			low := c.state.address
			c.state.address = (low + uint16(c.X)) & 0xFF
			if low+uint16(c.X) > 0xFF {
				c.state.pageCrossed = true
			}
			c.state.address |= uint16(bus.Read(c.PC)) << 8
			c.PC++
		case 3:
			c.state.data = bus.Read(c.state.address)
			if c.state.pageCrossed {
				hi := (c.state.address >> 8) + 1
				c.state.address = (c.state.address & 0xFF) | hi<<8
			}
		case 4:
			c.state.data = bus.Read(c.state.address)
		case 5:
			bus.Write(c.state.address, c.state.data)
		case 6:
			c.state.operation(c, bus)
			bus.Write(c.state.address, c.state.data)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admIndexedIndirectX(kind instrKind) microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			bus.Read(c.state.address)
			c.state.address = (c.state.address + uint16(c.X)) & 0xFF
		case 3:
			c.state.data = uint8(bus.Read(c.state.address))
		case 4:
			hi := uint16(bus.Read((c.state.address + 1) & 0xFF))
			c.state.address = hi<<8 | uint16(c.state.data)
		case 5:
			if kind == kindRead {
				c.state.data = bus.Read(c.state.address)
				c.state.operation(c, bus)
			} else {
				c.state.operation(c, bus)
				bus.Write(c.state.address, c.state.data)
			}
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admIndirectIndexedY(kind instrKind) microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			c.state.data = bus.Read(c.state.address)
		case 3:
			low := uint16(c.state.data) + uint16(c.Y)
			hi := uint16(bus.Read((c.state.address+1)&0xFF)) << 8
			if low > 0xFF {
				low &= 0xFF
				c.state.pageCrossed = true
			}
			c.state.address = hi | low
		case 4:
			c.state.data = bus.Read(c.state.address)
			if c.state.pageCrossed {
				hi := (c.state.address >> 8) + 1
				c.state.address = (c.state.address & 0xFF) | hi<<8
			} else if kind == kindRead {
				c.state.operation(c, bus)
				c.state.complete = true
			}
		case 5:
			if kind == kindRead {
				c.state.data = bus.Read(c.state.address)
				c.state.operation(c, bus)
			} else {
				c.state.operation(c, bus)
				bus.Write(c.state.address, c.state.data)
			}
			c.state.complete = true
		}
		c.state.cycle++
	}
}

// admAccumulator runs shift/rotate ops directly against the
// accumulator: one dummy read of the next opcode byte, then the
// operation runs with no memory access at all.
func admAccumulator() microStep {
	return func(c *CPU, bus Bus) {
		if c.state.cycle == 1 {
			bus.Read(c.PC)
			c.state.operation(c, bus)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

// admRelative implements the branch instructions: 2 cycles if not
// taken, 3 if taken without a page cross, 4 if taken across a page
// boundary.
func admRelative(flag uint8, set bool) microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.data = bus.Read(c.PC)
			c.PC++
			taken := (c.P&flag != 0) == set
			if !taken {
				c.state.complete = true
			}
		case 2:
			bus.Read(c.PC)
			offset := int8(c.state.data)
			oldPC := c.PC
			newPC := uint16(int32(oldPC) + int32(offset))
			c.state.address = newPC
			if newPC&0xFF00 == oldPC&0xFF00 {
				c.PC = newPC
				c.state.complete = true
			}
		case 3:
			bus.Read((c.PC & 0xFF00) | (c.state.address & 0xFF))
			c.PC = c.state.address
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admPush() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			bus.Read(c.PC)
		case 2:
			c.state.operation(c, bus)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

func admPull() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			bus.Read(c.PC)
		case 2:
			bus.Read(stackPage | uint16(c.SP))
		case 3:
			c.state.operation(c, bus)
			c.state.complete = true
		}
		c.state.cycle++
	}
}

// admJSR implements JSR $addr: fetch low byte, internal cycle, push
// PCH, push PCL, fetch high byte and jump.
func admJSR() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			c.state.address = uint16(bus.Read(c.PC))
			c.PC++
		case 2:
			bus.Read(stackPage | uint16(c.SP))
		case 3:
			c.push(bus, uint8(c.PC>>8))
		case 4:
			c.push(bus, uint8(c.PC&0xFF))
		case 5:
			hi := uint16(bus.Read(c.PC))
			c.PC = hi<<8 | c.state.address
			c.state.complete = true
		}
		c.state.cycle++
	}
}

// admRTS implements RTS: dummy read, stack-pointer fixup, pull PCL,
// pull PCH, then increment PC past the JSR operand.
func admRTS() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			bus.Read(c.PC)
		case 2:
			bus.Read(stackPage | uint16(c.SP))
		case 3:
			lo := uint16(c.pull(bus))
			c.state.address = lo
		case 4:
			hi := uint16(c.pull(bus))
			c.state.address |= hi << 8
		case 5:
			c.PC = c.state.address + 1
			c.state.complete = true
		}
		c.state.cycle++
	}
}

// admRTI implements RTI: dummy read, stack-pointer fixup, pull P,
// pull PCL, pull PCH.
func admRTI() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			bus.Read(c.PC)
		case 2:
			bus.Read(stackPage | uint16(c.SP))
		case 3:
			c.P = (c.pull(bus) &^ STATUS_FLAG_BREAK) | UNUSED_STATUS_FLAG
		case 4:
			c.state.address = uint16(c.pull(bus))
		case 5:
			hi := uint16(c.pull(bus))
			c.PC = hi<<8 | c.state.address
			c.state.complete = true
		}
		c.state.cycle++
	}
}

// admBRK implements the BRK instruction's 7-cycle sequence: a padding
// byte is read and skipped, then the same push/vector-fetch sequence
// as a hardware interrupt runs, with the Break flag set in the pushed
// status.
func admBRK() microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1:
			bus.Read(c.PC)
			c.PC++
		case 2:
			c.push(bus, uint8(c.PC>>8))
		case 3:
			c.push(bus, uint8(c.PC&0xFF))
		case 4:
			c.push(bus, c.P|UNUSED_STATUS_FLAG|STATUS_FLAG_BREAK)
		case 5:
			c.state.address = uint16(bus.Read(vectorBRK))
		case 6:
			hi := uint16(bus.Read(vectorBRK + 1))
			c.PC = hi<<8 | c.state.address
			c.P |= STATUS_FLAG_INTERRUPT_DISABLE
			c.state.complete = true
		}
		c.state.cycle++
	}
}

// admInterrupt is the hardware NMI/IRQ entry sequence: two dummy
// reads of the instruction that would otherwise have been fetched,
// then the same push/vector-fetch sequence as BRK but with the Break
// flag left clear in the pushed status.
func admInterrupt(vector uint16) microStep {
	return func(c *CPU, bus Bus) {
		switch c.state.cycle {
		case 1, 2:
			bus.Read(c.PC)
		case 3:
			c.push(bus, uint8(c.PC>>8))
		case 4:
			c.push(bus, uint8(c.PC&0xFF))
		case 5:
			c.push(bus, (c.P|UNUSED_STATUS_FLAG)&^STATUS_FLAG_BREAK)
		case 6:
			c.state.address = uint16(bus.Read(vector))
		case 7:
			hi := uint16(bus.Read(vector + 1))
			c.PC = hi<<8 | c.state.address
			c.P |= STATUS_FLAG_INTERRUPT_DISABLE
			c.state.complete = true
		}
		c.state.cycle++
	}
}
