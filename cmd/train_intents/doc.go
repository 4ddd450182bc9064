// Package main trains the intent and slot parser on dataset.json in the working
// directory and persists the trained model to ../model.
//
// Both paths can be overridden with -dataset and -dstmodel. Pass -pgo to write a
// CPU profile to default.pgo.
package main
