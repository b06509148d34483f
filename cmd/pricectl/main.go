// Command pricectl is the terminal front end for the car price prediction
// service: single predictions from flags, batch predictions from CSV/XLSX
// files, and batch template generation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pricewise/corolla-pricer/client"
	"github.com/pricewise/corolla-pricer/models"
)

const defaultAPIURL = "http://127.0.0.1:8000"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "single":
		err = runSingle(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "template":
		err = runTemplate(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: pricectl <command> [flags]

Commands:
  single    predict the price of one car described by flags
  batch     predict prices for every row of a CSV or XLSX file
  template  write the batch upload template CSV

Run 'pricectl <command> -h' for command flags.
`)
}

// runSingle builds one record from flags. Every feature has a flag named
// after its column; unset flags fall back to the template example values.
func runSingle(args []string) error {
	fs := flag.NewFlagSet("single", flag.ExitOnError)
	apiURL := fs.String("api", defaultAPIURL, "prediction service base URL")

	example := client.TemplateRecord()
	values := make(map[string]*string, len(models.RequiredFields))
	for _, field := range models.RequiredFields {
		var def string
		if models.IsCategorical(field) {
			def, _ = example.Categorical(field)
		} else {
			v, _ := example.Numeric(field)
			def = strconv.FormatFloat(v, 'f', -1, 64)
		}
		values[field] = fs.String(field, def, "value for "+field)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	row := make(client.RawRecord, len(values))
	for field, value := range values {
		row[field] = *value
	}
	record := client.ReconcileOne(row)

	price, err := client.New(*apiURL).Predict(context.Background(), record)
	if err != nil {
		return err
	}

	fmt.Printf("Predicted price: %s\n", client.FormatPrice(price))
	return nil
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	apiURL := fs.String("api", defaultAPIURL, "prediction service base URL")
	inPath := fs.String("in", "", "input CSV or XLSX file (required)")
	outPath := fs.String("out", "predictions.csv", "output CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		fs.Usage()
		return errors.New("-in is required")
	}

	table, err := client.ReadTableFile(*inPath)
	if err != nil {
		return err
	}
	if len(table.Rows) == 0 {
		return fmt.Errorf("%s has no data rows", *inPath)
	}

	if missing := client.MissingFields(table.Headers); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "warning: missing columns filled with defaults: %v\n", missing)
	}

	records := client.Reconcile(table.Rows)
	prices, err := client.New(*apiURL).PredictBatch(context.Background(), records)
	if err != nil {
		return err
	}
	if len(prices) != len(records) {
		return fmt.Errorf("server returned %d prices for %d rows", len(prices), len(records))
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", *outPath, err)
	}
	defer out.Close()

	if err := client.WritePredictionsCSV(out, table, prices); err != nil {
		return fmt.Errorf("could not write %s: %w", *outPath, err)
	}

	fmt.Printf("Predicted %d prices -> %s\n", len(prices), *outPath)
	return nil
}

func runTemplate(args []string) error {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	outPath := fs.String("out", "template.csv", "output CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", *outPath, err)
	}
	defer out.Close()

	if err := client.WriteTemplateCSV(out); err != nil {
		return fmt.Errorf("could not write %s: %w", *outPath, err)
	}

	fmt.Printf("Template written to %s\n", *outPath)
	return nil
}

// reportError explains the failure classes the client distinguishes instead
// of dumping a bare error chain.
func reportError(err error) {
	var statusErr *client.StatusError
	var shapeErr *client.UnexpectedResponseError

	switch {
	case errors.Is(err, client.ErrServiceUnreachable):
		fmt.Fprintf(os.Stderr, "error: could not reach the prediction service: %v\n", err)
		fmt.Fprintln(os.Stderr, "Is the server running? Check the -api address.")
	case errors.As(err, &statusErr):
		fmt.Fprintf(os.Stderr, "error: server rejected the request (status %d):\n%s\n", statusErr.StatusCode, statusErr.Body)
	case errors.As(err, &shapeErr):
		fmt.Fprintf(os.Stderr, "error: could not interpret the server response:\n%s\n", shapeErr.Body)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}
