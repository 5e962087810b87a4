// Package release lists the TOA files of a release.
//
// A release location is either a directory, listed through afero, or an
// "s3://bucket/prefix/" URL, listed through the storage client. Router picks
// between the two. Names are matched against "source*ext" with doublestar and
// returned sorted. FilterByType then narrows a listing to one TOA type.
//
// Listings are never cached; every reconciliation asks again.
package release
