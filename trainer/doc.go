// Package trainer turns tallies into trained hashtrons and measures networks on datasets.
// Training is a single pass: votes are tallied over the dataset, the majority of each
// command is stored into a quaternary filter, and the filter becomes the hashtron.
// No backpropagation or floating point arithmetic is involved.
package trainer
