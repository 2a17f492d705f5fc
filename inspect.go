package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lamp100307/Pluto/ast"
	"github.com/lamp100307/Pluto/lexer"
)

func (a *app) tokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the tokens of a Pluto program, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			toks, err := lexer.Tokenize(src)
			if err != nil {
				return fmt.Errorf("%v:%w", args[0], err)
			}
			out := cmd.OutOrStdout()
			for _, tok := range toks {
				if _, err := fmt.Fprintf(out, "%v\t%v\n", tok.Pos, tok); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) astCommand() *cobra.Command {
	var dot bool
	cmd := &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree of a Pluto program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prog, err := a.load(args[0])
			if err != nil {
				return err
			}
			if dot {
				return ast.WriteDot(cmd.OutOrStdout(), prog)
			}
			return ast.Dump(cmd.OutOrStdout(), prog)
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "write a Graphviz DOT graph instead of an indented dump")
	return cmd
}
