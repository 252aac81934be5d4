package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/formatter"
	"github.com/validalex/draft-backend/internal/pkg/validator"
)

func validateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a draft request body without calling the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req entity.DraftRequest
			if err := readJSON(file, &req); err != nil {
				return err
			}

			result := validator.NewPetitionValidator(validator.DefaultSchema()).Validate(&req.Data)
			printValidation(cmd.OutOrStdout(), result)
			if !result.OK {
				return fmt.Errorf("%d required field(s) missing", len(result.Missing))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON request body, - for stdin")
	return cmd
}

func renderCmd() *cobra.Command {
	var (
		file     string
		format   string
		out      string
		fontPath string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an export request body to DOCX, PDF or Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req entity.ExportRequest
			if err := readJSON(file, &req); err != nil {
				return err
			}
			doc, err := validator.ValidateExportRequest(&req)
			if err != nil {
				return err
			}
			if err := formatter.ConfigureLicense(os.Getenv("EXPORT_UNIDOC_LICENSE_API_KEY")); err != nil {
				return err
			}

			f, err := formatter.NewFactory(formatter.Options{PDFFontPath: fontPath}).Create(entity.ExportFormat(format))
			if err != nil {
				return err
			}
			data, err := f.Format(doc)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}

			if out == "" {
				out = "acao_cobranca" + f.FileExtension()
			}
			if err := os.WriteFile(filepath.Clean(out), data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON export body, - for stdin")
	cmd.Flags().StringVar(&format, "format", string(entity.FormatPDF), "docx, pdf or markdown")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path")
	cmd.Flags().StringVar(&fontPath, "font", os.Getenv("EXPORT_PDF_FONT_PATH"), "UTF-8 TTF font for PDF output")
	return cmd
}

func readJSON(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func printValidation(w io.Writer, result entity.ValidationResult) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(fmt.Sprintf("ok: %t", result.OK))
	tw.AppendHeader(table.Row{"Kind", "Code / Path", "Detail"})
	for _, m := range result.Missing {
		tw.AppendRow(table.Row{"missing", m.Path, m.Label})
	}
	for _, a := range result.Alerts {
		tw.AppendRow(table.Row{a.Level, a.Code, a.Message})
	}
	tw.Render()
}
