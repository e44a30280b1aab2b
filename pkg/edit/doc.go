// Package edit owns the state of one media item while its metadata is being
// edited.
//
// A Controller is created per page visit (or CLI session). Load fetches the
// item once; ApplyPatch merges single-field patches from the form; Save sends
// the full item and either queues a confirmation and navigates to the view
// route, or folds the server's field errors back into the form. The ownership
// gate is consulted on load and hides the form entirely when it fails.
package edit
