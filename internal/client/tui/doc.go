// Package tui is the terminal version of the public membership form: the
// applicant fills in the fields and a photo path, the phone number is
// checked for uniqueness while it is typed, and the application is sent as
// a multipart upload with a progress bar.
package tui
