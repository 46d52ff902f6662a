// Package riddle turns true equations into matchstick puzzles.
//
// Equations enumerates the true equations of a given shape (number of
// digits). Build transforms each of them with the engine and records every
// result that is a false equation: the result is a riddle, the equation it
// came from one of its solutions. Several equations can lead to the same
// riddle, so a Map holds a set of solutions per riddle.
//
// A Run is one Build with its parameters, an ID and a content digest of the
// map, ready to be stored or packaged.
package riddle
