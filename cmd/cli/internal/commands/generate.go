package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/mockuments/internal/app"
	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/config"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/export"
	"github.com/MrJamesThe3rd/mockuments/internal/logger"
)

func (cli *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of documents",
		Long: `Generate one or more synthetic documents of a given category and type,
render them through Gotenberg and write the PDF (or a zip for batches) to the
output directory or an S3 bucket.

Every flag can also be set through a MOCKUMENTS_<FLAG> environment variable,
e.g. MOCKUMENTS_REGION=FR or MOCKUMENTS_S3_BUCKET=fixtures.`,
		Example: `  # One automated UK invoice
  mockuments generate --category COSTS --type Invoice

  # A batch of 20 French receipts
  mockuments generate --region FR --type Receipt --quantity 20

  # A supplier statement with linked invoices, uploaded to S3
  mockuments generate --category SUPPLIER --link --s3-bucket fixtures

  # A manual sales invoice
  mockuments generate --category SALES --mode manual --counterpart "Acme Corp" --total 250.00`,
		Args: cobra.NoArgs,
		RunE: cli.runGenerate,
	}

	f := cmd.Flags()
	f.String("region", "UK", "Region code (UK, AU, US, FR)")
	f.String("category", string(catalog.Costs), "Document category")
	f.String("type", "", "Document type, defaults to the category's first type")
	f.String("mode", "auto", "Generation mode: auto or manual")
	f.Int("quantity", 1, "Number of documents, automated mode only (1-50)")
	f.Bool("link", false, "Bundle supporting invoices with supplier statements")
	f.Bool("po-number", false, "Print a purchase order number on sales documents")
	f.String("out", "", "Output directory, defaults to OUTPUT_DIR")
	f.String("s3-bucket", "", "Upload to this S3 bucket instead of writing locally")
	f.String("counterpart", "", "Manual: counterpart name")
	f.String("date", "", "Manual: document date (YYYY-MM-DD), defaults to today")
	f.String("due-date", "", "Manual: due date (YYYY-MM-DD), defaults to date + 30 days")
	f.String("total", "120.00", "Manual: total amount including tax")
	f.String("tax", "", "Manual: tax amount, implies --auto-tax=false")
	f.Bool("auto-tax", true, "Manual: derive tax from the region rate")

	return cmd
}

func (cli *CLI) runGenerate(cmd *cobra.Command, _ []string) error {
	v := cli.v
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if bucket := v.GetString("s3-bucket"); bucket != "" {
		cfg.Output.S3Bucket = bucket
	}

	lg, closer, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg, append([]app.Option{app.WithWait()}, cli.appOpts...)...)
	if err != nil {
		return err
	}

	req, err := cli.request(a)
	if err != nil {
		return err
	}

	sink, err := a.Sink(ctx, v.GetString("out"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	req.Progress = func(p int) {
		fmt.Fprintf(cmd.ErrOrStderr(), "\rRendering... %3d%%", p)
	}

	res, err := a.Export.ExportBatch(ctx, req, sink)
	fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return err
	}

	for _, f := range res.Files {
		fmt.Fprintln(out, f)
	}

	if res.Archive != "" {
		fmt.Fprintf(out, "packed %d files into %s\n", len(res.Files), res.Archive)
	}

	return nil
}

func (cli *CLI) request(a *app.App) (export.Request, error) {
	v := cli.v

	mode, err := document.ParseMode(v.GetString("mode"))
	if err != nil {
		return export.Request{}, err
	}

	entry, err := a.Catalog.Entry(catalog.Category(v.GetString("category")))
	if err != nil {
		return export.Request{}, err
	}

	docType := v.GetString("type")
	if docType == "" {
		docType = entry.DefaultType()
	}

	req := export.Request{
		Region:         v.GetString("region"),
		Category:       entry.Code,
		DocType:        docType,
		Mode:           mode,
		Quantity:       v.GetInt("quantity"),
		LinkSupporting: v.GetBool("link"),
		WithPONumber:   v.GetBool("po-number"),
	}

	if mode != document.ModeManual {
		return req, nil
	}

	m, err := cli.manual(entry.Code)
	if err != nil {
		return export.Request{}, err
	}

	req.Manual = &m

	return req, nil
}

func (cli *CLI) manual(cat catalog.Category) (document.Manual, error) {
	v := cli.v
	today := cli.now().Format(time.DateOnly)

	in := document.ManualInput{
		Counterpart: v.GetString("counterpart"),
		Date:        v.GetString("date"),
		DueDate:     v.GetString("due-date"),
		Total:       v.GetString("total"),
		Tax:         v.GetString("tax"),
		AutoTax:     v.GetBool("auto-tax") && v.GetString("tax") == "",
	}

	if in.Date == "" {
		in.Date = today
	}

	if in.DueDate == "" {
		d, err := time.Parse(time.DateOnly, in.Date)
		if err == nil {
			in.DueDate = d.AddDate(0, 0, 30).Format(time.DateOnly)
		}
	}

	if in.Counterpart == "" {
		in.Counterpart = "Joe's Coffee"
		if cat == catalog.Sales {
			in.Counterpart = "Acme Corp"
		}
	}

	return document.ParseManual(in)
}
