package sqltokenize

// Keyword/fingerprint table data, embedded at build time as Go source;
// there is no external configuration file to load.
//
// Word lists are grounded in the reserved-word vocabulary multiple SQL
// front-ends already agree on (vippsas/sqlcode's sqlparser/scanner.go
// reservedWords, oarkflow/sqlparser's lexer/keywords.go, and
// sqlparser/pgsql/reserved.go), narrowed to the subset relevant to
// injection-detection folding: the words that change fold behaviour (UNION,
// COLLATE, logic/comparison operators spelled as words) or that the
// classifier needs to recognise as SQL functions/types commonly abused in
// injection payloads.

var keywordWords = []keywordEntry{
	{"SELECT", KindKeyword},
	{"INSERT", KindKeyword},
	{"UPDATE", KindKeyword},
	{"DELETE", KindKeyword},
	{"DROP", KindKeyword},
	{"CREATE", KindKeyword},
	{"ALTER", KindKeyword},
	{"TRUNCATE", KindKeyword},
	{"EXEC", KindKeyword},
	{"EXECUTE", KindKeyword},
	{"GRANT", KindKeyword},
	{"REVOKE", KindKeyword},
	{"FROM", KindKeyword},
	{"WHERE", KindKeyword},
	{"INTO", KindKeyword},
	{"VALUES", KindKeyword},
	{"SET", KindKeyword},
	{"JOIN", KindKeyword},
	{"INNER", KindKeyword},
	{"OUTER", KindKeyword},
	{"LEFT", KindKeyword},
	{"RIGHT", KindKeyword},
	{"FULL", KindKeyword},
	{"ON", KindKeyword},
	{"AS", KindKeyword},
	{"ORDER", KindKeyword},
	{"BY", KindKeyword},
	{"GROUP", KindGroup},
	{"GROUPBY", KindGroup},
	{"HAVING", KindKeyword},
	{"LIMIT", KindKeyword},
	{"OFFSET", KindKeyword},
	{"DISTINCT", KindKeyword},
	{"ALL", KindKeyword},
	{"ANY", KindKeyword},
	{"SOME", KindKeyword},
	{"EXISTS", KindKeyword},
	{"NULL", KindKeyword},
	{"IS", KindOperator},
	{"CASE", KindKeyword},
	{"WHEN", KindKeyword},
	{"THEN", KindKeyword},
	{"ELSE", KindKeyword},
	{"END", KindKeyword},
	{"UNION", KindUnion},
	{"INTERSECT", KindKeyword},
	{"EXCEPT", KindKeyword},
	{"COLLATE", KindCollate},
	{"CAST", KindFunction},
	{"CONVERT", KindFunction},
	{"DECLARE", KindKeyword},
	{"BEGIN", KindKeyword},
	{"COMMIT", KindKeyword},
	{"ROLLBACK", KindKeyword},
	{"WAITFOR", KindKeyword},
	{"DELAY", KindKeyword},
	{"INFORMATION_SCHEMA", KindBareword},
}

var keywordTypes = []keywordEntry{
	{"INT", KindSQLType},
	{"INTEGER", KindSQLType},
	{"SMALLINT", KindSQLType},
	{"BIGINT", KindSQLType},
	{"TINYINT", KindSQLType},
	{"BIT", KindSQLType},
	{"BOOLEAN", KindSQLType},
	{"BOOL", KindSQLType},
	{"DECIMAL", KindSQLType},
	{"NUMERIC", KindSQLType},
	{"FLOAT", KindSQLType},
	{"REAL", KindSQLType},
	{"DOUBLE", KindSQLType},
	{"MONEY", KindSQLType},
	{"CHAR", KindSQLType},
	{"VARCHAR", KindSQLType},
	{"NCHAR", KindSQLType},
	{"NVARCHAR", KindSQLType},
	{"TEXT", KindSQLType},
	{"BLOB", KindSQLType},
	{"BINARY", KindSQLType},
	{"VARBINARY", KindSQLType},
	{"DATE", KindSQLType},
	{"DATETIME", KindSQLType},
	{"DATETIME2", KindSQLType},
	{"TIME", KindSQLType},
	{"TIMESTAMP", KindSQLType},
	{"UUID", KindSQLType},
	{"UNIQUEIDENTIFIER", KindSQLType},
	{"JSON", KindSQLType},
	{"JSONB", KindSQLType},
	{"XML", KindSQLType},
}

// keywordOperators are SQL words that act as operators: IN/LIKE reclassify
// based on what follows them, and the logic operators fold like AND/OR/XOR.
var keywordOperators = []keywordEntry{
	{"AND", KindLogicOperator},
	{"OR", KindLogicOperator},
	{"XOR", KindLogicOperator},
	{"NOT", KindUnaryOperator},
	{"LIKE", KindOperator},
	{"RLIKE", KindOperator},
	{"REGEXP", KindOperator},
	{"IN", KindOperator},
	{"BETWEEN", KindOperator},
	{"DIV", KindOperator},
	{"MOD", KindOperator},
}

// keywordFunctions are function names commonly abused in injection payloads
// (blind/error-based exfiltration, timing attacks, string concatenation).
var keywordFunctions = []keywordEntry{
	{"COUNT", KindFunction},
	{"SUM", KindFunction},
	{"AVG", KindFunction},
	{"MIN", KindFunction},
	{"MAX", KindFunction},
	{"CONCAT", KindFunction},
	{"CONCAT_WS", KindFunction},
	{"SUBSTRING", KindFunction},
	{"SUBSTR", KindFunction},
	{"MID", KindFunction},
	{"CHAR", KindFunction},
	{"CHR", KindFunction},
	{"ASCII", KindFunction},
	{"ORD", KindFunction},
	{"HEX", KindFunction},
	{"UNHEX", KindFunction},
	{"LENGTH", KindFunction},
	{"LEN", KindFunction},
	{"IF", KindFunction},
	{"IFNULL", KindFunction},
	{"NULLIF", KindFunction},
	{"COALESCE", KindFunction},
	{"SLEEP", KindFunction},
	{"BENCHMARK", KindFunction},
	{"PG_SLEEP", KindFunction},
	{"VERSION", KindFunction},
	{"DATABASE", KindFunction},
	{"SCHEMA", KindFunction},
	{"USER", KindFunction},
	{"CURRENT_USER", KindFunction},
	{"SYSTEM_USER", KindFunction},
	{"SESSION_USER", KindFunction},
	{"LOAD_FILE", KindFunction},
	{"EXTRACTVALUE", KindFunction},
	{"UPDATEXML", KindFunction},
	{"XMLTYPE", KindFunction},
	{"DBMS_PIPE", KindFunction},
	{"UTL_INADDR", KindFunction},
	{"JSON_EXTRACT", KindFunction},
	{"CAST", KindFunction},
	{"CONVERT", KindFunction},
}

// keywordFingerprints is the blacklist of folded fingerprint patterns known
// to indicate an injection attempt. Each entry is stored pre-converted to
// the "v1" form (leading '0', ASCII letters uppercased) by fingerprintKey
// at init time.
//
// The set below is deliberately representative, not exhaustive: it covers
// the canonical tautology, stacked-statement, and comment-truncation shapes
// plus the well-known folded shapes of UNION-based, boolean-blind, and
// stacked-query injections. It is data, not logic; extending coverage means
// appending rows, not touching the folder or classifier.
var keywordFingerprints = buildFingerprintTable([]string{
	"s&s",    // 'x' OR 'x' -- string logic-op string tautology, left unfolded
	"s&sos",  // 1' OR '1'='1 under the quote-single reparse attempt
	"1s",     // bare ' payload fragment after initial-quote reparse
	"so",     // string immediately followed by a dangling operator
	"n&n",    // 1 OR 1 tautology on bare numbers
	"sos",    // string op string, not collapsed by the 3-token rule (dialect-dependent)
	"s)",     // string immediately closed by an extra paren (classic `') --` break-out)
	"1)",     // SQL type name followed by stray right-paren
	"nc",     // number followed immediately by a comment (classic -- truncation)
	"sc",     // string followed immediately by a comment
	"n;n",    // stacked statement: value ; value
	"s;n",    // stacked statement: string ; value
	"n;c",    // 1;-- : value ; comment
	"s;c",    // '...';--
	"1;k",    // SQL type name ; keyword
	"s;k",
	"ks;s",   // UNION SELECT-flavoured three-token shape
	"kts",    // keyword UNION string
	"ktn",    // keyword UNION number
	"sks",    // string keyword string (classic UNION SELECT injected between quotes)
	"1n",     // SQL type name directly followed by bareword with no operator
	"sn",     // string directly followed by bareword with no operator
	"n(n)",   // function-call-shaped numeric break-out, e.g. )) OR 1=1 (( folded residue
	"n;knn",  // 1; DROP TABLE users-- : value ; keyword + unmerged two-word DDL target,
	          // the window filling before the trailing "--" comment is reached
})

func buildFingerprintTable(fps []string) []keywordEntry {
	entries := make([]keywordEntry, 0, len(fps))
	for _, fp := range fps {
		entries = append(entries, keywordEntry{Word: fingerprintKey(fp), Kind: KindFingerprint})
	}
	return entries
}
