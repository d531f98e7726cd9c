// Package services implements the business logic behind the HTTP handlers
// and the CLI.
//
// AnalysisService owns one analysis from bytes to report:
//
//	analysis, err := svc.AnalyzeUpload(ctx, file, header.Filename)
//	if err != nil {
//	    errorHandler.HandleError(w, r, err) // already mapped for rendering
//	    return
//	}
//	render.JSON(w, r, analysis.Report)
//
// Uploads are validated, staged to a temp file, run through the
// dataprocessing pipeline and removed again. Failures are translated by
// MapAnalysisError: unsupported extensions become 415 API errors, parse
// failures become parsing application errors (422), and context errors
// pass through so the error handler answers 504.
//
// HealthService backs the liveness, readiness and version endpoints.
package services
