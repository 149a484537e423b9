/*
Copyright © 2023 Glossopoeia
*/
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/kr/pretty"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/glossopoeia/subst/compiler/session"
	"github.com/glossopoeia/subst/compiler/substitution"
	"github.com/glossopoeia/subst/compiler/types"
)

func newApplyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apply FIXTURE...",
		Short: "Instantiate the entities of each fixture with its substitution table",
		Example: `  subst apply trait_method.yaml
  subst apply --phase trans --strict fixtures/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed, err := opts.applyFiles(cmd, args)
			if err != nil {
				return err
			}
			if opts.cfg.Strict && failed > 0 {
				return errors.Errorf("substitution reported %d error(s)", failed)
			}
			return nil
		},
	}
}

// Fixtures are independent, so they are applied concurrently. Output is buffered per
// fixture and written in argument order.
func (o *rootOptions) applyFiles(cmd *cobra.Command, paths []string) (int, error) {
	jobs := o.cfg.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}
	color := o.useColor(cmd.OutOrStdout())
	outs := make([]bytes.Buffer, len(paths))
	counts := make([]int, len(paths))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := o.applyFile(&outs[i], path, color)
			if err != nil {
				return errors.Wrap(err, path)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	failed := 0
	for i := range paths {
		if _, err := outs[i].WriteTo(cmd.OutOrStdout()); err != nil {
			return 0, errors.Wrap(err, "writing output")
		}
		failed += counts[i]
	}
	return failed, nil
}

// Apply one fixture, printing each instantiated entity followed by the diagnostics.
// Returns the number of errors reported by substitution.
func (o *rootOptions) applyFile(out io.Writer, path string, color bool) (int, error) {
	fx, err := LoadFixture(path)
	if err != nil {
		return 0, err
	}
	o.logger.Debug("loaded fixture", "path", path, "entities", len(fx.Entities))

	substs, err := fx.Substs(o.cfg.Phase)
	if err != nil {
		return 0, err
	}
	entities, err := fx.ParseEntities()
	if err != nil {
		return 0, err
	}
	if substs.IsNoop() {
		o.logger.Debug("substitutions are a no-op", "path", path)
	}

	ctx := types.NewCtxt(session.New())
	span := fx.Span()
	for _, ent := range entities {
		res := applyEntity(ctx, substs, ent, span)
		fmt.Fprintf(out, "%s => %s\n", ent, res)
		if o.cfg.Dump {
			fmt.Fprintf(out, "%# v\n", pretty.Formatter(res))
		}
		o.logger.Debug("applied", "entity", ent.Source, "substs", substs.String(), "errors", ctx.Sess.ErrorCount())
	}

	for _, d := range ctx.Sess.Diagnostics() {
		fmt.Fprintln(out, renderDiagnostic(d, color))
	}
	return ctx.Sess.ErrorCount(), nil
}

func applyEntity(ctx *types.Ctxt, substs *substitution.Substs, ent Entity, span *session.Span) Entity {
	if ent.Predicate != nil {
		return Entity{Source: ent.Source, Predicate: substitution.ApplyAt(ctx, substs, ent.Predicate, span)}
	}
	return Entity{Source: ent.Source, Type: substitution.ApplyAt(ctx, substs, ent.Type, span)}
}

func (o *rootOptions) useColor(out io.Writer) bool {
	switch o.cfg.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

const (
	ansiBoldRed    = "\x1b[1;31m"
	ansiBoldYellow = "\x1b[1;33m"
	ansiReset      = "\x1b[0m"
)

func renderDiagnostic(d session.Diagnostic, color bool) string {
	text := d.String()
	if !color {
		return text
	}
	severity := d.Severity.String()
	switch d.Severity {
	case session.Error:
		return ansiBoldRed + severity + ansiReset + text[len(severity):]
	case session.Warning:
		return ansiBoldYellow + severity + ansiReset + text[len(severity):]
	default:
		return text
	}
}
