// Package blob stores opaque objects addressed by slash separated keys.
//
// Two backends implement Store: LocalStore keeps objects under a directory
// and S3Store keeps them in an S3 compatible bucket. Missing objects surface
// as the backend's native error (a *fs.PathError wrapping fs.ErrNotExist,
// or *types.NoSuchKey), so the errmap FS and AWS sources render both as
// not_found without the caller translating anything:
//
//	store, err := blob.NewLocalStore("/var/lib/apidemo/attachments")
//	if err != nil {
//		return err
//	}
//	obj, body, err := store.Get(ctx, "notes/1/attachment")
//	if err != nil {
//		return handler.Fail(err)
//	}
//	defer body.Close()
package blob
