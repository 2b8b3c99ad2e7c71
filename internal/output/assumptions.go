package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Tax tables: 2025 state and regional IRPF scales, no inflation indexing",
	"Empleado: revenue is the gross salary, worker social security share only",
	"Autónomo: RETA quota from the net monthly income bracket at its minimum base",
	"SL: administrator pays the lowest RETA quota and all after-tax profit is distributed",
	"Beckham: flat 24% up to 600,000€ on revenue net of expenses",
	"Children under 3 supplement not applied (ages are not an input)",
}
