// render produces the dashboard PNG and the PDF report for a metrics JSON file,
// without touching the report store or sending email.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/2beens/gymreports/internal/advice"
	"github.com/2beens/gymreports/internal/dashboard"
	"github.com/2beens/gymreports/internal/fonts"
	"github.com/2beens/gymreports/internal/healthdata"
	"github.com/2beens/gymreports/internal/logging"
	"github.com/2beens/gymreports/internal/pdfreport"

	log "github.com/sirupsen/logrus"
)

func main() {
	in := flag.String("in", "", "metrics JSON file (use - for stdin)")
	out := flag.String("out", "output", "output dir for the generated files")
	fontPath := flag.String("font", "fonts/NotoSansTC-Regular.ttf", "TTF/OTF font covering traditional chinese")
	seed := flag.Uint64("seed", 0, "seed for the 30 day trend panel (0 = time based)")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    *logLevel,
	})

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	dashboardPath, pdfPath, err := run(context.Background(), *in, *out, *fontPath, *seed)
	if err != nil {
		log.Fatalf("render: %s", err)
	}

	fmt.Println(dashboardPath)
	fmt.Println(pdfPath)
}

func run(ctx context.Context, in, out, fontPath string, seed uint64) (string, string, error) {
	var (
		raw []byte
		err error
	)
	if in == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(in)
	}
	if err != nil {
		return "", "", fmt.Errorf("read metrics: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var metrics map[string]any
	if err := decoder.Decode(&metrics); err != nil || metrics == nil {
		return "", "", fmt.Errorf("metrics must be a JSON object: %v", err)
	}
	rec, err := healthdata.Normalize(metrics)
	if err != nil {
		return "", "", err
	}

	font, err := fonts.Load(fontPath)
	if err != nil {
		log.Warnf("load font: %s", err)
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	dashboardComposer := dashboard.NewComposer(dashboard.ComposerParams{
		OutputDir: out,
		Font:      font,
		Rand:      rand.New(rand.NewPCG(seed, seed)),
	})
	dashboardPath, err := dashboardComposer.Compose(ctx, rec)
	if err != nil {
		return "", "", fmt.Errorf("render dashboard: %w", err)
	}

	pdfComposer := pdfreport.NewComposer(pdfreport.ComposerParams{
		OutputDir: out,
		Font:      font,
		FontPath:  fontPath,
	})
	pdfPath, err := pdfComposer.Compose(ctx, pdfreport.ComposeParams{
		PatientID:       rec.PatientID,
		Recommendations: advice.Recommendations(rec),
		DashboardPath:   dashboardPath,
	})
	if err != nil {
		return dashboardPath, "", fmt.Errorf("compose pdf report: %w", err)
	}

	return dashboardPath, pdfPath, nil
}
