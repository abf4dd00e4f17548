// Package daybook implements a personal trading-session journal: discrete
// win/loss trade outcomes are recorded against a per-day ledger, and account
// balance, profitability and risk-limit state are continuously derived from
// that history.
//
// The core pieces are:
//   - Ledger management: day-keyed records of trades, mutated through
//     AddTrades and DeleteTrade, with a full deterministic Recalibration pass
//     rebuilding every derived balance after each mutation.
//   - Risk gate: a per-day state machine that blocks new trade entry once the
//     configured stop-gain or stop-loss trade count is reached, with a sticky
//     per-day override.
//   - Sync coordination: a trailing-edge debounce that collapses bursts of
//     local mutations into a single full-snapshot write to a Store.
//   - Data persistence: a flat, tagged snapshot form (one row per brokerage,
//     trade or goal) encoded as JSONL for interchange and stored in SQLite by
//     the store package.
//
// All monetary arithmetic uses exact decimals; rounding happens only at
// display time, so repeated recalibration never drifts.
//
// This package is the foundational logic for the `dbk` command-line tool.
package daybook
