/*
Postgres query builder. Models a `select` statement as a tree of typed
expressions, and renders it deterministically into SQL text. Oriented towards
Postgres: double-quoted identifiers, Postgres literal syntax, `$1`-style
ordinal parameters.

Two rendering modes. `(*Select).ToSQL` renders values inline as SQL literals.
`(*Select).ToValues` extracts values into an ordered argument list, rendering
ordinal parameters in their place. The resulting `string, []any` pair is what
Go database drivers take as inputs for queries and statements.

Expressions are a closed set of types, all implementing `Expr`. Anything
implementing `Expr` may appear anywhere a sub-expression is allowed, including
entire sub-selects.

Also provides `Query` for composing raw SQL fragments with automatic parameter
renumeration, and tools for converting structs into SQL clauses and arguments.
*/
package pqb
