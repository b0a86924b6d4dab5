package game

import "context"

// MigrateLegacy folds the device's old single-slot "last played" record
// into the result store.
//
// The operation is idempotent and non-destructive: it only writes when the
// store has no entry for the legacy date (new format wins), it never deletes
// the legacy record, and a malformed record (missing date or score) is
// skipped silently. It must complete before the first HasPlayed check is
// trusted; the session guard sequences it accordingly.
func MigrateLegacy(ctx context.Context, store ResultStore, legacy LegacyStore) error {
	rec, ok, err := legacy.Last(ctx)
	if err != nil || !ok {
		return err
	}
	if rec.Date == "" || rec.Score == nil {
		return nil
	}

	played, err := store.HasPlayed(ctx, rec.Date)
	if err != nil || played {
		return err
	}

	return store.Put(ctx, newResult(rec.Date, *rec.Score, rec.Selection))
}
