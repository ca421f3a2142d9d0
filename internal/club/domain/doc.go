// Package domain defines the club entities a coach manages directly.
//
// A Team groups players under one coach for an age group. A Player belongs
// to exactly one team through a weak TeamID reference: removing entities
// never cascades, so a dangling TeamID is tolerated by every reader.
package domain
