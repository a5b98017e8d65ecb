// Package manifest reads and writes YAML record description files.
//
// A description file is the parser-neutral form of what the analyze
// package extracts from Go source. It lets another tool feed records to the
// generator, and it is what the "inspect" command prints.
//
// # Schema Overview
//
//	version: "1"
//	package: kennel
//	imports:
//	  - path: time
//	declared: [NewDog]
//	records:
//	  - name: Dog
//	    shape: named        # default
//	    methods: [Bark]
//	    fields:
//	      - name: name      # access key
//	        ident: Name     # Go selector, defaults to name
//	        type: string
//	      - {name: age, ident: Age, type: uint32}
//
// Record level imports replace the file level list for that record.
package manifest
