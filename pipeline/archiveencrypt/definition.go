package archiveencrypt

import "github.com/khjklujn/state-machine/machine"

var definition = mustDefinition()

// mustDefinition builds the machine-type metadata once at package init,
// mirroring the original implementation's @machine class-decoration step;
// a malformed graph here is a programming error worth failing fast on, not
// a runtime condition to recover from.
func mustDefinition() *machine.Definition {
	def, err := machine.NewDefinition("ArchiveEncrypt",
		"Copy a source file into a staging area, GPG-encrypt it, move the "+
			"encrypted copy into an archive folder, and clean up any staged "+
			"or archived artifacts left behind by a failed attempt.",

		machine.Node("ensure_staging_directory").
			Entry().
			Overview("Create the staging folder if it does not already exist.").
			Happy("copy_to_staging").
			Unhappy("report_results").
			HandleExceptions("report_results"),

		machine.Node("copy_to_staging").
			Overview("Copy the source file into the staging folder.").
			Happy("encrypt_file").
			Unhappy("remove_copied_file").
			HandleExceptions("remove_copied_file"),

		machine.Node("encrypt_file").
			Overview("GPG-encrypt the staged copy for the configured recipient key.").
			Happy("ensure_archive_directory").
			Unhappy("remove_copied_file").
			HandleExceptions("remove_copied_file"),

		machine.Node("ensure_archive_directory").
			Overview("Create the archive folder if it does not already exist.").
			Happy("move_to_archive").
			Unhappy("remove_encrypted_file").
			HandleExceptions("remove_encrypted_file"),

		machine.Node("move_to_archive").
			Overview("Move the encrypted file from staging into the archive folder.").
			Happy("report_results").
			Unhappy("remove_encrypted_file").
			HandleExceptions("remove_encrypted_file"),

		machine.Node("remove_encrypted_file").
			Overview("Remove the encrypted file from the archive and staging folders after a failed move.").
			Happy("remove_copied_file").
			Unhappy("remove_copied_file").
			HandleExceptions("remove_copied_file"),

		machine.Node("remove_copied_file").
			Overview("Remove the staged copy of the source file, the sink every failure path after ensure_staging_directory drains into.").
			Happy("report_results").
			Unhappy("report_results").
			HandleExceptions("report_results"),

		machine.Node("report_results").
			Terminal().
			Overview("Record the final outcome of the run; no further node follows.").
			NoExceptions(),
	)
	if err != nil {
		panic(err)
	}
	return def
}
