/*
Package merge combines numeric tallies keyed by string.

Every input is a Counts: an ordered mapping of key to number. Merging sums
the values per key across all inputs and returns a new Counts ordered by
descending total. The inputs are never modified.

The two merge functions produce the same totals and differ only in how
equal totals are ordered:

  - MergeOrdered keeps first-appearance order across the inputs.
  - MergeCounting keeps last-change order: a key moves to the back every time
    its total changes, so a key that settled on its total earlier sorts first.
    Adding zero leaves a key where it is.

Both are built on one accumulation pass plus a stable descending sort.
*/
package merge
