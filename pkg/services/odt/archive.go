package odt

import (
	"archive/zip"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
)

// writeArchive zips the staging directory into the final document. The
// mimetype entry goes first and is stored without compression; everything
// else is deflated. The archive is built as a hidden temp file next to the
// destination and moved into place in one rename, so a failed run leaves
// nothing behind at outputPath.
func writeArchive(staging, outputPath string, entries []stagedImage) (err error) {
	dir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)

	if err = writeMimetypeEntry(zw, filepath.Join(staging, "mimetype")); err != nil {
		return err
	}

	names := []string{"content.xml", "styles.xml", "meta.xml", "META-INF/manifest.xml"}
	for _, entry := range entries {
		names = append(names, "Pictures/"+entry.Filename)
	}
	for _, name := range names {
		if err = writeDeflatedEntry(zw, staging, name); err != nil {
			return err
		}
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp archive: %w", err)
	}
	if err = os.Rename(tmp.Name(), outputPath); err != nil {
		return fmt.Errorf("publish archive: %w", err)
	}
	return nil
}

// writeMimetypeEntry writes the mimetype as the first entry, stored rather
// than deflated, with sizes and CRC in the local header. Readers that probe
// the package type by offset reject archives that deviate from this.
func writeMimetypeEntry(zw *zip.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read mimetype: %w", err)
	}

	header := &zip.FileHeader{
		Name:               "mimetype",
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(data),
		CompressedSize64:   uint64(len(data)),
		UncompressedSize64: uint64(len(data)),
	}
	w, err := zw.CreateRaw(header)
	if err != nil {
		return fmt.Errorf("create mimetype entry: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write mimetype entry: %w", err)
	}
	return nil
}

func writeDeflatedEntry(zw *zip.Writer, staging, name string) error {
	src, err := os.Open(filepath.Join(staging, filepath.FromSlash(name)))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}
