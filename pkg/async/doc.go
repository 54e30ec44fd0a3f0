// Package async runs independent computations concurrently and collects their
// results through typed futures.
//
//	cert := async.Async(ctx, userID, fetchCertificate)
//	id := async.Async(ctx, userID, fetchIdentityDocument)
//
//	for i, r := range async.Settle(cert, id) {
//		if r.Err != nil {
//			// record the failure and keep the other results
//		}
//	}
//
// WaitAll stops at the first error, WaitAny returns the first completed future and
// Settle always collects every outcome.
package async
