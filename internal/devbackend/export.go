package devbackend

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/MKhiriev/mylife-client/models"
)

const exportNote = "This is an emergency export of encrypted vault files. You will need your PIN to decrypt this data."

// EmergencyExport writes a zip archive with metadata.json and every vault
// file under vault/. It works in any vault state. ErrNoVaultFiles when
// nothing exists.
func (b *Backend) EmergencyExport(w io.Writer, version string) error {
	b.mu.Lock()
	files := b.filesLocked()
	state := b.statusLocked().State
	now := b.now()
	b.mu.Unlock()

	if len(files) == 0 {
		return ErrNoVaultFiles
	}

	zw := zip.NewWriter(w)

	meta, err := json.MarshalIndent(models.ExportMetadata{
		AppName:    "MyLife",
		Version:    version,
		ExportedAt: models.Timestamp{Time: now},
		VaultState: state,
		Note:       exportNote,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export metadata: %w", err)
	}
	if err = writeZipFile(zw, "metadata.json", meta); err != nil {
		return err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err = writeZipFile(zw, "vault/"+name, files[name]); err != nil {
			return err
		}
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("close export archive: %w", err)
	}

	b.logger.Info().Int("files", len(files)).Msg("emergency export written")
	return nil
}

func writeZipFile(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create %s in archive: %w", name, err)
	}
	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write %s to archive: %w", name, err)
	}
	return nil
}

func (b *Backend) filesLocked() map[string][]byte {
	files := make(map[string][]byte, len(b.archived)+2)
	if b.sealed != nil {
		files[vaultFileName] = b.sealed
	}
	if b.salt != nil {
		files[saltFileName] = b.salt
	}
	for name, data := range b.archived {
		files[name] = data
	}
	return files
}
