package assemble

import (
	"maman14asm/internal/core"
	"maman14asm/internal/diag"
	"maman14asm/internal/ioas"
	"maman14asm/internal/word"
)

func (a *Assembler) runSecondPass(lines []SourceLine) {
	mutate := !a.Sink.HasErrors() // spec.md §4.6: pass 1 errors suppress image mutation in pass 2
	cursor := 0

	for _, line := range lines {
		stmt := ParseStatement(line.Num, line.Text)
		switch stmt.Kind {
		case StmtDirective:
			if stmt.Directive == core.DirEntry {
				a.secondPassEntry(stmt)
			}
		case StmtInstruction:
			cursor = a.secondPassInstruction(stmt, cursor, mutate)
		}
	}
}

func (a *Assembler) secondPassEntry(stmt Statement) {
	if stmt.HasLabel {
		a.Sink.Warn(stmt.LineNum, diag.KindWarnLabelOnEntry, stmt.Label)
	}
	if len(stmt.Args) == 0 {
		a.Sink.Error(stmt.LineNum, diag.KindBadOperandCount, stmt.Key)
		return
	}
	name := stmt.Args[0]
	if err := ioas.ExpectEOL(stmt.Args[1:]); err != nil {
		a.Sink.Error(stmt.LineNum, diag.KindExtraneousTokens, stmt.Key)
		return
	}
	sym, found := a.Symtab.Lookup(name)
	if !found {
		a.Sink.Error(stmt.LineNum, diag.KindUnknownSymbol, name)
		return
	}
	if sym.IsExtern {
		a.Sink.Error(stmt.LineNum, diag.KindEntryOfExternal, name)
		return
	}
	a.Symtab.SetEntry(name)
}

// secondPassInstruction resolves every symbol-dependent operand of one
// instruction statement and returns the cursor position for the next
// statement. It re-derives, silently, exactly which words pass 1 would
// have contributed (see parseInstructionOperands), so the cursor tracks
// the real code image even on a line pass 1 already rejected.
func (a *Assembler) secondPassInstruction(stmt Statement, cursor int, mutate bool) int {
	operands, ok := a.parseInstructionOperands(stmt, false)
	if !ok {
		return cursor // pass 1 contributed zero words for this statement
	}

	instrStart := word.Word(cursor + word.InitialLoadAddr)
	cursor++ // past the first (opcode) word

	for _, op := range operands {
		switch op.Kind {
		case OperandImmediate:
			cursor++ // already final from pass 1; nothing to resolve
		case OperandRegister:
			// no extra word
		case OperandDirect:
			cursor = a.resolveDirect(stmt.LineNum, op.Symbol, cursor, mutate)
		case OperandRelative:
			cursor = a.resolveRelative(stmt.LineNum, op.Symbol, instrStart, cursor, mutate)
		}
	}
	return cursor
}

func (a *Assembler) resolveDirect(lineNum int, name string, cursor int, mutate bool) int {
	sym, found := a.Symtab.Lookup(name)
	if !found {
		a.Sink.Error(lineNum, diag.KindUnknownSymbol, name)
		return cursor + 1
	}
	if mutate && cursor < a.Code.Len() {
		a.Code.Set(cursor, sym.Word)
		if sym.IsExtern {
			a.Externs.Append(name, cursor+word.InitialLoadAddr)
		}
	}
	return cursor + 1
}

func (a *Assembler) resolveRelative(lineNum int, name string, instrStart word.Word, cursor int, mutate bool) int {
	sym, found := a.Symtab.Lookup(name)
	if !found {
		a.Sink.Error(lineNum, diag.KindUnknownSymbol, name)
		return cursor + 1
	}
	if sym.IsExtern {
		a.Sink.Error(lineNum, diag.KindExternRelative, name)
		return cursor + 1
	}
	if mutate && cursor < a.Code.Len() {
		offset := word.ToS21(int64(sym.Address()) - int64(instrStart))
		a.Code.Set(cursor, word.ExtWord(word.AREAbsolute, offset))
	}
	return cursor + 1
}
