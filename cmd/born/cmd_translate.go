package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-reasoner/born/network"
	"github.com/born-reasoner/born/ontology"
	"github.com/born-reasoner/born/term"
	"github.com/born-reasoner/born/translate"
)

var (
	filterEL        bool
	skipUnsupported bool
	outputFile      string
)

// translateCmd translates an ontology into clauses
var translateCmd = &cobra.Command{
	Use:   "translate ONTOLOGY",
	Short: "Translate an axiom listing into clauses",
	Long: `Reads an ontology written as an axiom listing and prints the clauses of its
translation: declarations first, then one or two facts per axiom.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

// networkCmd lists the variables of a Bayesian network
var networkCmd = &cobra.Command{
	Use:   "network FILE",
	Short: "List the random variables of a Bayesian network",
	Args:  cobra.ExactArgs(1),
	RunE:  runNetwork,
}

func init() {
	translateCmd.Flags().BoolVar(&filterEL, "filter", false, "Drop axioms outside EL before translating")
	translateCmd.Flags().BoolVar(&skipUnsupported, "skip-unsupported", false, "Skip axioms without a translation instead of failing")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the clauses into a file")
}

func translator(cmd *cobra.Command) *translate.Translator {
	skip := cfg.SkipUnsupported
	if f := cmd.Flags().Lookup("skip-unsupported"); f != nil && f.Changed {
		skip = skipUnsupported
	}
	return &translate.Translator{Logger: logger, SkipUnsupported: skip}
}

func runTranslate(cmd *cobra.Command, args []string) error {
	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	o, err := ontology.DecodeYAML(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if filterEL || cfg.FilterEL {
		o = ontology.Filter(o, ontology.IsEL)
	}

	clauses, err := translator(cmd).Translate(o)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if outputFile == "" {
		return term.WriteProgram(cmd.OutOrStdout(), clauses, term.DefaultWriteOptions)
	}
	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	if err := term.WriteProgram(out, clauses, term.DefaultWriteOptions); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func runNetwork(cmd *cobra.Command, args []string) error {
	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	vars, err := network.Variables(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	w := cmd.OutOrStdout()
	for _, v := range vars {
		p := "-"
		if v.Probability != nil {
			p = v.Probability.String()
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", v.Name, p, v.Line); err != nil {
			return err
		}
	}
	return nil
}
