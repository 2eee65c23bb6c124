// Command protgroup runs protein inference: peptide annotation against
// a FASTA database followed by greedy parsimony grouping.
package main

import (
	"protgroup/internal/appshell"
	"protgroup/internal/cli"
)

func main() {
	appshell.Main(cli.Execute)
}
