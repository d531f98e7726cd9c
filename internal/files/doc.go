// Package files stages uploaded spreadsheets on local disk.
//
// The loader dispatches on the file extension, and Excel workbooks are
// read from a seekable file, so uploads are written to the configured
// temp directory under a unique name before analysis:
//
//	stager := files.NewStager(cfg.Upload.TempDir, cfg.Upload.MaxBytes, logger)
//	staged, err := stager.Stage(ctx, r, "sales.xlsx")
//	if err != nil {
//	    return err
//	}
//	defer staged.Cleanup()
//
// Cleanup is idempotent and always safe to defer.
package files
