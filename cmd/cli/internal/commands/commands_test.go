package commands_test

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/mockuments/cmd/cli/internal/commands"
	"github.com/MrJamesThe3rd/mockuments/internal/app"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/render"
)

func bitmap(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 30, 40))))

	return buf.Bytes()
}

func TestCatalogCmd(t *testing.T) {
	var out bytes.Buffer

	cli := commands.NewCLI(commands.Options{Output: &out})
	cli.SetArgs([]string{"catalog"})

	require.NoError(t, cli.Execute())

	for _, want := range []string{"COSTS", "Credit Note", "VAULT", "ATM Slip", "SUPPLIER", "VAT 20%", "GST 10%", "MM/DD/YYYY"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestGenerateCmd(t *testing.T) {
	type testCase struct {
		name      string
		args      []string
		captures  int
		wantFile  string
		wantInZip int
	}

	day := time.Now().Format(time.DateOnly)

	tests := []testCase{
		{
			name:     "SingleInvoice",
			args:     []string{"generate", "--category", "COSTS", "--type", "Invoice"},
			captures: 1,
			wantFile: "COSTS_Invoice_1_" + day + ".pdf",
		},
		{
			name:      "Batch",
			args:      []string{"generate", "--region", "FR", "--type", "Receipt", "--quantity", "3"},
			captures:  3,
			wantFile:  "Mockuments_Batch_" + day + ".zip",
			wantInZip: 3,
		},
		{
			name:     "ManualSale",
			args:     []string{"generate", "--category", "SALES", "--mode", "manual", "--counterpart", "Acme Corp", "--total", "250.00", "--quantity", "9"},
			captures: 1,
			wantFile: "SALES_SalesInvoice_1_" + day + ".pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("OUTPUT_DIR", dir)
			t.Setenv("LOG_OUTPUT", filepath.Join(dir, "cli.log"))

			ctrl := gomock.NewController(t)
			raster := render.NewMockRasterizer(ctrl)
			raster.EXPECT().Rasterize(gomock.Any(), gomock.Any(), gomock.Any()).Return(bitmap(t), nil).Times(tt.captures)

			var out bytes.Buffer

			cli := commands.NewCLI(commands.Options{Output: &out, AppOptions: []app.Option{app.WithRasterizer(raster)}})
			cli.SetArgs(tt.args)
			require.NoError(t, cli.Execute())

			assert.Contains(t, out.String(), tt.wantFile)

			blob, err := os.ReadFile(filepath.Join(dir, tt.wantFile))
			require.NoError(t, err)

			if tt.wantInZip == 0 {
				assert.True(t, bytes.HasPrefix(blob, []byte("%PDF-")))
				return
			}

			zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
			require.NoError(t, err)
			assert.Len(t, zr.File, tt.wantInZip)
		})
	}
}

func TestGenerateCmd_Errors(t *testing.T) {
	type testCase struct {
		name    string
		args    []string
		wantErr error
	}

	tests := []testCase{
		{name: "BadCategory", args: []string{"generate", "--category", "PAYROLL"}, wantErr: document.ErrConfiguration},
		{name: "BadMode", args: []string{"generate", "--mode", "sometimes"}, wantErr: document.ErrConfiguration},
		{name: "BadQuantity", args: []string{"generate", "--quantity", "51"}, wantErr: document.ErrValidation},
		{name: "BadTotal", args: []string{"generate", "--mode", "manual", "--total", "lots"}, wantErr: document.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("OUTPUT_DIR", dir)
			t.Setenv("LOG_OUTPUT", filepath.Join(dir, "cli.log"))

			ctrl := gomock.NewController(t)

			cli := commands.NewCLI(commands.Options{
				Output:     &bytes.Buffer{},
				AppOptions: []app.Option{app.WithRasterizer(render.NewMockRasterizer(ctrl))},
			})
			cli.SetArgs(tt.args)

			assert.ErrorIs(t, cli.Execute(), tt.wantErr)
		})
	}
}
