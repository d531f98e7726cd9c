// Package dataprocessing turns an uploaded spreadsheet into classified,
// aggregated data ready for charting.
//
// # Architecture
//
// A run is a fixed sequence of stages, each returning a new value:
//
//  1. Loader: reads a CSV or Excel file into a Dataset
//  2. Cleaner: normalizes headers, nulls sentinel tokens, coerces monetary
//     and quantity columns to numbers, derives calculated_revenue and fills
//     textual gaps with "Unknown"
//  3. Classifier: assigns identity, temporal, financial or categorical to
//     each column from an ordered rule table
//  4. InsightEngine: top performing categories and the monthly trend
//
// Pipeline wires the stages together:
//
//	p := dataprocessing.NewPipeline(logger)
//	result, err := p.Run(ctx, "sales.xlsx", "")
//	if errors.Is(err, dataprocessing.ErrUnsupportedFormat) {
//	    // reject the upload
//	}
//
// # Data Flow
//
//	File → Loader → Dataset → Cleaner → CleanResult → Classifier → Classification → InsightEngine → Insights
//
// # Error Handling
//
// Only load time failures are returned: UnsupportedFormatError for an
// unknown extension and ParseError for an unreadable file. Cells that fail
// numeric or date coercion are absorbed (zero or null) and never reported.
package dataprocessing
