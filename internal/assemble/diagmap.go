package assemble

import (
	"maman14asm/internal/core"
	"maman14asm/internal/diag"
)

func symbolNameDiagKind(e core.SymbolNameError) diag.Kind {
	switch e {
	case core.SymEmpty:
		return diag.KindSymbolEmpty
	case core.SymNotAlphaStart:
		return diag.KindSymbolNotAlphaStart
	case core.SymNotAlnumRest:
		return diag.KindSymbolNotAlnumRest
	case core.SymTooLong:
		return diag.KindSymbolTooLong
	case core.SymReserved:
		return diag.KindSymbolReserved
	default:
		return diag.KindSymbolReserved
	}
}
