package filter

// Filter term grammar
//
// A filter term is a whitespace separated sequence of keywords. Quoting with
// single or double quotes groups whitespace into one keyword and forces
// literal treatment of reserved words.
//
// --- KEYWORD FORMS ---
//
// keyword     : COLUMN OP VALUE        // column relation, e.g. name=foo
//             | "=" VALUE              // exact free-text term
//             | VALUE                  // approximate free-text term
//             | "and" | "or" | "not"   // logical join for the next term
//             | "re" | "regexp"        // regexp mode for the next free-text term
//
// OP          : "=" | "~" | ">" | "<" | ":" ;   // ":" is regexp match
//
// COLUMN      : [a-zA-Z_][a-zA-Z0-9_.-]* ;
//
// --- CONTROL KEYWORDS ---
//
// first=N          1-based index of the first row to return
// rows=N           page size; -2 selects the configured default, other
//                  values below 1 mean unlimited
// sort=COL         primary or tie-breaking ascending sort
// sort-reverse=COL descending sort
// permission=NAME  collected for the access-control layer
// owner=NAME       collected for the access-control layer
// tag=NAME=VALUE   correlated tag existence predicate
// tag_id=UUID      correlated tag existence predicate by tag UUID
//
// Terms combine left to right with OR as the implicit join; "and" forces a
// conjunction and "not" negates exactly the next term. There is no
// parenthesized grouping.
//
// Compilation never fails on user input: unknown columns, unsupported
// relations and malformed quoting degrade to skipped terms or literal text.
