// Package metadata handles parsing and inspection of per-token NFT
// metadata documents (the "<id>.json" files that accompany "<id>.png"
// collection images).
//
// A metadata document follows the common ERC-721 marketplace shape:
//
//	{
//	  "name": "Starf Miner #5",
//	  "image": "ipfs://Qm.../5.png",
//	  "attributes": [
//	    {"trait_type": "Background", "value": "Gold"},
//	    {"trait_type": "Body", "value": "Blue"}
//	  ]
//	}
//
// Parsing is strict encoding/json on purpose: metadata validity is one of
// the things the validator checks, so comment stripping or other lenient
// preprocessing would defeat the check. Fields not listed in Document are
// silently ignored during parsing.
package metadata
