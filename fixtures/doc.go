/*
Package fixtures registers overrides declared in YAML documents.

A document lists mocks by service and operation:

	mocks:
	  - service: KMS
	    operation: DescribeKey
	    output: {keymetadata: {keyid: "k-1", enabled: true}}
	  - service: KMS
	    operation: ScheduleKeyDeletion
	    error: {code: KMSInvalidStateException, message: "already pending", fault: client}

Outputs are decoded into the type the Catalog holds for the key, so a catalog
entry is needed for every fixture that carries an output. Field names follow
the yaml.v3 default, the lower-cased Go field name.
*/
package fixtures
