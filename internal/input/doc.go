// Package input converts raw form text into validated values and display strings.
//
// Masking functions (NormalizePrice, NormalizeQuantity) run on every keystroke and
// return text suitable for echoing back into the field. Validate runs once at submit
// time and is the only place business rules on form input are enforced.
package input
