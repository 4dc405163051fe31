/*
Package jsvalue converts host values into script-literal text.

# Overview

Every argument that crosses from Go into the script context passes through
Serialize. The supported value set is closed:

  - nil                     → null
  - bool                    → true / false
  - integer and float kinds → canonical number text (NaN, Infinity included)
  - string                  → double-quoted, escaped literal
  - slices and arrays       → [a,b,...]
  - maps with string keys   → {"k":v,...} with keys sorted
  - Object                  → {"k":v,...} in insertion order
  - Evalable                → the value's own JSEval text, verbatim

Anything else fails with *UnsupportedTypeError. Strings are the only path
where caller text enters generated script, so Quote escapes every character
that could terminate or alter the literal.

# Handles

A Handle is a non-owning reference to a value that lives only in the script
context. It serializes to its bare global name. Release emits a delete
statement once; using a handle after release is a caller bug.
*/
package jsvalue
