// Package cli provides the interactive admin console for the Nehru website
// backend.
//
// The console signs the admin in, then works on one module at a time
// (banners, blog, gallery, complaints, licenses):
//
//	modules            list modules
//	use <module>       select a module and load its records
//	list               reload and print the records
//	show <id>          print one record
//	add                create a record (prompts for fields and file)
//	edit <id>          update a record; empty answers keep values
//	delete <id>        ask to delete a record
//	confirm | cancel   answer the pending delete
//	approve <id>       approve a membership application
//	login | logout
//	exit | quit
//
// Success and failure messages are queued by the module services and
// printed after each command. The REPL is started with App.Run.
package cli
