package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Single filer, flat standard deduction, no itemizing",
	"Marginal brackets only: no credits, phase-outs, or alternative minimum tax",
	"Gross income is treated as ordinary income",
	"Amounts are shown rounded to whole dollars",
}
