// Package ingest turns uploaded files into catalog images.
//
// Ingesting one file is a single logical transaction:
//
//  1. the extension is checked against the allow-list
//  2. the selected categories are resolved
//  3. the payload is written to storage under a fresh UUID name
//  4. EXIF metadata is extracted and normalized
//  5. the image row and its category associations are created
//
// Steps 1 and 2 run before any side effect. If step 5 fails, the file
// written in step 3 is deleted again, so the catalog never references a
// missing file. A crash between steps 3 and 5 can leave an unreferenced
// file behind, never a row without a file.
//
// Batches ingest every file independently and report a result per file.
package ingest
