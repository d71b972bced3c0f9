// Package trainer provides the train / evaluate / classify pipeline of the
// letter recognizer. A Pipeline owns exactly one trained model at a time and
// swaps it atomically, so Classify may run concurrently with a new Train.
// Every operation blocks until done and cannot be cancelled.
package trainer
