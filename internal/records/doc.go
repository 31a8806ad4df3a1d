// Package records supplies the dashboard's record collection.
//
// A Record is a JSON object decoded into a map. Records come from either an
// HTTP endpoint (Client) or a JSON file (FileSource); both pick the record
// array out of the document with a gjson path, so APIs that wrap their
// results ({"data": {"users": [...]}}) work without extra code.
//
// Selection identity is provided by KeyFunc: a configured key field when the
// records have one, otherwise an xxhash of the record's canonical JSON.
package records
