// Package exporter dumps a machine configuration to a JSON file.
//
// The document has two halves, metadata and settings, each split into the
// global stack and one entry per extruder:
//
//	{
//	  "metadata": {
//	    "global":    {"stack": {...}, "user": {...}, ..., "definition": {...}},
//	    "extruders": {"0": {...}, "1": {...}}
//	  },
//	  "settings": {
//	    "global":    {"all": {...}, "user": {...}, ..., "definition": {...}},
//	    "extruders": {"0": {...}, "1": {...}}
//	  }
//	}
//
// Containers are keyed by their position name (see stack.Role), never by the
// "type" they declare in their own metadata. "all" holds the resolved value of
// every key known to the stack; all other leaves are strings or null.
//
// Export converts and encodes the whole document before it asks for a
// destination, so a value that cannot be represented aborts the export
// without touching the file system.
package exporter
