package assemble

import (
	"maman14asm/internal/core"
	"maman14asm/internal/diag"
	"maman14asm/internal/ioas"
	"maman14asm/internal/word"
)

func (a *Assembler) runFirstPass(lines []SourceLine) {
	for _, line := range lines {
		stmt := ParseStatement(line.Num, line.Text)
		switch stmt.Kind {
		case StmtEmpty:
			if stmt.LabelEmptyStatement {
				a.Sink.Warn(line.Num, diag.KindWarnLabelEmptyStatement, stmt.Label)
			}
		case StmtUnknownMnemonic:
			a.Sink.Error(line.Num, diag.KindUnknownMnemonic, stmt.Key)
		case StmtDirective:
			a.firstPassDirective(stmt)
		case StmtInstruction:
			a.firstPassInstruction(stmt)
		}
	}
}

func (a *Assembler) firstPassDirective(stmt Statement) {
	switch stmt.Directive {
	case core.DirData:
		if stmt.HasLabel {
			a.installLabel(stmt.LineNum, stmt.Label, a.dataAddr(), false, true)
		}
		a.firstPassData(stmt)
	case core.DirString:
		if stmt.HasLabel {
			a.installLabel(stmt.LineNum, stmt.Label, a.dataAddr(), false, true)
		}
		a.firstPassString(stmt)
	case core.DirExtern:
		if stmt.HasLabel {
			a.Sink.Warn(stmt.LineNum, diag.KindWarnLabelOnExtern, stmt.Label)
		}
		a.firstPassExtern(stmt)
	case core.DirEntry:
		if stmt.HasLabel {
			a.Sink.Warn(stmt.LineNum, diag.KindWarnLabelOnEntry, stmt.Label)
		}
		// validated in pass 2
	default:
		a.Sink.Error(stmt.LineNum, diag.KindUnknownDirective, stmt.Key)
	}
}

// dataAddr is a data symbol's tentative address before the inter-pass
// shift: just the data image's current size. INITIAL_LOAD_ADDR and the
// final code size are added by ShiftDataAddresses.
func (a *Assembler) dataAddr() word.Word {
	return word.Word(a.Data.Len())
}

func (a *Assembler) installLabel(lineNum int, name string, addr word.Word, isExtern, isData bool) {
	if errKind := core.ValidateSymbolName(name); errKind != core.SymOK {
		a.Sink.Error(lineNum, symbolNameDiagKind(errKind), name)
		return
	}
	are := word.ARERelocatable
	if isExtern {
		are = word.AREExternal
	}
	if err := a.Symtab.Install(name, word.ExtWord(are, addr), isExtern, false, isData); err != nil {
		a.Sink.Error(lineNum, diag.KindDuplicateSymbol, name)
	}
}

func (a *Assembler) firstPassData(stmt Statement) {
	items, kind, ok := splitCommaList(stmt.Args)
	if !ok {
		a.Sink.Error(stmt.LineNum, kind, stmt.Key)
		return
	}
	if len(items) == 0 {
		a.Sink.Error(stmt.LineNum, diag.KindMalformedInteger, stmt.Key)
		return
	}
	for _, tok := range items {
		n, err := ioas.ParseIntLiteral(tok)
		if err != nil {
			a.Sink.Error(stmt.LineNum, diag.KindMalformedInteger, tok)
			continue
		}
		a.Data.Append(word.ToS24(n))
	}
}

func (a *Assembler) firstPassString(stmt Statement) {
	rest := ioas.TrimLine(stringDirectiveTail(stmt.Raw))
	body, err := ioas.ParseStringLiteral(rest)
	if err != nil {
		a.Sink.Error(stmt.LineNum, diag.KindMalformedString, rest)
		return
	}
	for i := 0; i < len(body); i++ {
		a.Data.Append(word.CharToWord(body[i]))
	}
	a.Data.Append(0)
}

// stringDirectiveTail recovers the raw text after ".string" (and any
// label), since the payload itself may contain whitespace that Tokenize
// would have already split apart.
func stringDirectiveTail(raw string) string {
	idx := indexDirectiveArgs(raw, ".string")
	if idx < 0 {
		return ""
	}
	return raw[idx:]
}

func indexDirectiveArgs(raw, directive string) int {
	pos := indexOf(raw, directive)
	if pos < 0 {
		return -1
	}
	return pos + len(directive)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func (a *Assembler) firstPassExtern(stmt Statement) {
	if len(stmt.Args) == 0 {
		a.Sink.Error(stmt.LineNum, diag.KindBadOperandCount, stmt.Key)
		return
	}
	name := stmt.Args[0]
	if err := ioas.ExpectEOL(stmt.Args[1:]); err != nil {
		a.Sink.Error(stmt.LineNum, diag.KindExtraneousTokens, stmt.Key)
		return
	}
	if errKind := core.ValidateSymbolName(name); errKind != core.SymOK {
		a.Sink.Error(stmt.LineNum, symbolNameDiagKind(errKind), name)
		return
	}
	if err := a.Symtab.Install(name, word.ExtWord(word.AREExternal, 0), true, false, false); err != nil {
		a.Sink.Error(stmt.LineNum, diag.KindDuplicateSymbol, name)
	}
}

func (a *Assembler) firstPassInstruction(stmt Statement) {
	inst := stmt.Instruction

	if stmt.HasLabel {
		a.installLabel(stmt.LineNum, stmt.Label, word.Word(a.Code.Len()+word.InitialLoadAddr), false, false)
	}

	operands, ok := a.parseInstructionOperands(stmt, true)
	if !ok {
		return
	}

	first := word.SetField(0, word.FieldOpcode, inst.Opcode)
	first = word.SetField(first, word.FieldFunct, inst.Funct)
	if inst.NumArgs == 2 {
		first = word.SetField(first, word.FieldSrcAddr, word.Word(operands[0].AddrMode()))
		if operands[0].Kind == OperandRegister {
			first = word.SetField(first, word.FieldSrcReg, word.Word(operands[0].Reg))
		}
		first = word.SetField(first, word.FieldDestAddr, word.Word(operands[1].AddrMode()))
		if operands[1].Kind == OperandRegister {
			first = word.SetField(first, word.FieldDestReg, word.Word(operands[1].Reg))
		}
	} else if inst.NumArgs == 1 {
		first = word.SetField(first, word.FieldDestAddr, word.Word(operands[0].AddrMode()))
		if operands[0].Kind == OperandRegister {
			first = word.SetField(first, word.FieldDestReg, word.Word(operands[0].Reg))
		}
	}
	first = word.SetARE(first, word.AREAbsolute)
	a.Code.Append(first)

	for _, op := range operands {
		switch op.Kind {
		case OperandImmediate:
			a.Code.Append(word.ExtWord(word.AREAbsolute, op.Imm))
		case OperandDirect, OperandRelative:
			a.Code.Append(0) // placeholder, resolved in pass 2
		case OperandRegister:
			// registers live in the first word's fields; no extra word.
		}
	}
}
