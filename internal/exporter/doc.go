// Package exporter serializes pipeline results.
//
// BuildReport turns a dataprocessing.Result into the chart-ready
// domain.Report and WriteReport encodes it as indented JSON. CSVWriter
// writes the cleaned dataset back out as CSV with a UTF-8 BOM so Excel
// opens it correctly.
//
// Example usage:
//
//	result, err := pipeline.Run(ctx, "sales.xlsx", "")
//	if err != nil {
//		return err
//	}
//	report := exporter.BuildReport(result)
//	err = exporter.WriteReport(os.Stdout, report)
//
//	writer := exporter.NewCSVWriter("exports", logger)
//	err = writer.WriteDataset("sales_clean.csv", result.Dataset())
package exporter
