package main

import (
	"fmt"
	"os"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/analyzer"
	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/config"
	"github.com/pattyshack/wlp4c/parser"
)

func main() {
	cfg := config.Default()
	table, err := cfg.Table()
	if err != nil {
		fmt.Println("Grammar error:", err)
		os.Exit(1)
	}

	for _, fileName := range os.Args[1:] {
		fmt.Println("=====================")
		fmt.Println("File name:", fileName)
		fmt.Println("---------------------")
		content, err := os.ReadFile(fileName)
		if err != nil {
			fmt.Println("ReadFile error:", err)
			continue
		}

		root, err := parser.ParseTokenStream(
			table,
			parseutil.NewBufferedByteLocationReaderFromSlice(
				fileName,
				content))
		if err != nil {
			fmt.Println("Parse error:", err)
			continue
		}

		_, err = analyzer.Analyze(root)

		// Types are printed for the nodes checked before the first error.
		fmt.Println(ast.TreeString(root, cfg.TreeIndent))

		if err != nil {
			fmt.Println("---------------------------")
			fmt.Println("Type error:", err)
		}
	}
}
