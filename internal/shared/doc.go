// Package shared holds helpers used across SheetPulse packages that belong
// to no single layer.
//
// The testutil subpackage provides a capturing slog handler for log
// assertions and spreadsheet fixtures (a canonical sales CSV and an
// excelize workbook builder):
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteFile(t, "sales.csv", testutil.SalesCSV)
//	    ...
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
