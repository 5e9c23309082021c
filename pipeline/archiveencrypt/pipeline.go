package archiveencrypt

import (
	"context"

	"github.com/khjklujn/state-machine/adapter/filemanager"
	"github.com/khjklujn/state-machine/adapter/gpg"
	"github.com/khjklujn/state-machine/machine"
)

// New binds the archive-and-encrypt machine's node bodies to real
// adapters and returns a ready-to-run Instance. ctx bounds every shelled-out
// gpg invocation the run makes; the machine itself is synchronous, so one
// ctx for the whole run is sufficient — there is no per-node cancellation
// point beyond the external process boundary.
func New(ctx context.Context, logger machine.Logger, binder machine.Binder, state State) *machine.Instance[State] {
	fm := machine.Bind(binder, filemanager.New)
	gc := machine.Bind(binder, gpg.New)

	dispatch := map[string]machine.Func[State]{
		"ensure_staging_directory": machine.Barrier("report_results", ensureStagingDirectory(fm)),
		"copy_to_staging":          machine.Barrier("remove_copied_file", copyToStaging(fm)),
		"encrypt_file":             machine.Barrier("remove_copied_file", encryptFile(ctx, gc)),
		"ensure_archive_directory": machine.Barrier("remove_encrypted_file", ensureArchiveDirectory(fm)),
		"move_to_archive":          machine.Barrier("remove_encrypted_file", moveToArchive(fm)),
		"remove_encrypted_file":    machine.Barrier("remove_copied_file", removeEncryptedFile(fm)),
		"remove_copied_file":       machine.Barrier("report_results", removeCopiedFile(fm)),
		"report_results":           reportResults,
	}

	return machine.NewInstance(definition, logger, state, "archive and encrypt failed:", dispatch)
}
