package core

// InfoKey is a driver capability key passed to SQLGetInfo.
type InfoKey int

// Capability keys read once per physical connection.
const (
	InfoMaxIdentifierLen     InfoKey = 10005
	InfoDatabaseName         InfoKey = 16
	InfoDBMSName             InfoKey = 17
	InfoDBMSVersion          InfoKey = 18
	InfoIdentifierCase       InfoKey = 28
	InfoIdentifierQuoteChar  InfoKey = 29
	InfoMaxTableNameLen      InfoKey = 35
	InfoUserName             InfoKey = 47
	InfoQuotedIdentifierCase InfoKey = 93
)

// String returns the SQL_ constant name of the key.
func (k InfoKey) String() string {
	switch k {
	case InfoMaxIdentifierLen:
		return "SQL_MAX_IDENTIFIER_LEN"
	case InfoDatabaseName:
		return "SQL_DATABASE_NAME"
	case InfoDBMSName:
		return "SQL_DBMS_NAME"
	case InfoDBMSVersion:
		return "SQL_DBMS_VER"
	case InfoIdentifierCase:
		return "SQL_IDENTIFIER_CASE"
	case InfoIdentifierQuoteChar:
		return "SQL_IDENTIFIER_QUOTE_CHAR"
	case InfoMaxTableNameLen:
		return "SQL_MAX_TABLE_NAME_LEN"
	case InfoUserName:
		return "SQL_USER_NAME"
	case InfoQuotedIdentifierCase:
		return "SQL_QUOTED_IDENTIFIER_CASE"
	default:
		return "SQL_INFO_UNKNOWN"
	}
}

// IdentifierCase values reported for InfoIdentifierCase.
const (
	IdentifierCaseUpper     = 1
	IdentifierCaseLower     = 2
	IdentifierCaseSensitive = 3
	IdentifierCaseMixed     = 4
)
