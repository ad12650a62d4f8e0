/*
Package terra implements the value types of a Terra blockchain client:
token amounts, fixed-point decimals, coins, coin collections, exchange rates,
and bech32 addresses and public keys.

# Features

  - Immutable amounts and decimals, ensuring safe usage across multiple goroutines
  - Arithmetic that reports overflow, underflow and division by zero as errors
    instead of wrapping around
  - Coins that refuse to mix denominations
  - Six role-tagged address and public key types with lossless conversions
  - Interoperability with the [decimal] package and the Cosmos SDK math types

# Representation

A [Uint128] is an unsigned 128-bit integer, the unit in which the chain counts
token amounts.
A [Dec] is a signed 128-bit integer scaled by 10^18, which is how the chain
represents rates and ratios.
A [Coin] pairs a denomination, such as "uluna", with a Uint128 amount, and
[Coins] is a collection holding at most one coin per denomination.

Addresses are bech32 strings. Each of the types [AccAddress], [ValAddress],
[ValConsAddress], [AccPubKey], [ValPubKey] and [ValConsPubKey] is bound to a
[Role], which is implemented as an integer index into an in-memory table
holding the prefix of the role and whether it is an address or a public key.

# Text Formats

Amounts are always written as decimal digit strings, including in JSON,
so that consumers limited to float64 numbers do not lose precision.
Coins are written as "1000000uluna" and coin collections as a comma-separated
list, such as "1000000uluna,2000000uusd".
Decimals are written in the shortest exact form by [Dec.String] and in the
fixed-width form "1.500000000000000000" by [Dec.MarshalText].

# Decimal Arithmetic

Addition and subtraction of decimals are exact.
Multiplication divides the raw product by 10^18 and truncates the remainder.
Division divides the raw scaled integers and does not rescale the result,
see [Dec.Quo].

# Errors

All constructors and fallible operations return errors that wrap one of the
sentinel errors of this package, such as [ErrOverflow] or [ErrDenomMismatch],
so they can be checked with [errors.Is].
The package panics only in the Must* helpers and in address conversions
applied to malformed values built with an Unchecked* constructor.
*/
package terra
