package gqlgrammar

import "github.com/alecthomas/participle/v2/lexer"

// ----------------------------------------------------------------------------
// GQL AST
//
// Covers the ISO/IEC 39075 linear query statements: MATCH, FILTER, LET, FOR,
// ORDER BY / OFFSET / LIMIT and RETURN / FINISH, chained with NEXT.
// ----------------------------------------------------------------------------

// Program is the root of a GQL parse tree.
type Program struct {
	Pos        lexer.Position
	Statements []*Statement `@@ ( "NEXT" @@ )*`
	Semi       string       `@Semicolon?`
}

// Statement is a linear query: simple statements ending in a result statement.
type Statement struct {
	Pos    lexer.Position
	Parts  []*Part `@@*`
	Result *Result `@@`
}

// Part is one simple query statement.
type Part struct {
	Pos    lexer.Position
	Match  *MatchStatement  `  @@`
	Filter *FilterStatement `| @@`
	Let    *LetStatement    `| @@`
	For    *ForStatement    `| @@`
	Order  *OrderBy         `| @@`
	Offset *Offset          `| @@`
	Limit  *Limit           `| @@`
}

// Result is RETURN or FINISH.
type Result struct {
	Pos    lexer.Position
	Return *ReturnStatement `  @@`
	Finish bool             `| @"FINISH"`
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// MatchStatement is OPTIONAL? MATCH graph pattern WHERE?.
type MatchStatement struct {
	Pos      lexer.Position
	Optional bool           `@"OPTIONAL"?`
	Patterns []*PathPattern `"MATCH" @@ ( Comma @@ )*`
	Where    *Expression    `( "WHERE" @@ )?`
}

// FilterStatement is FILTER WHERE? condition.
type FilterStatement struct {
	Pos  lexer.Position
	Expr *Expression `"FILTER" "WHERE"? @@`
}

// LetStatement is LET var = expr, ...
type LetStatement struct {
	Pos      lexer.Position
	Bindings []*LetBinding `"LET" @@ ( Comma @@ )*`
}

// LetBinding is var = expr.
type LetBinding struct {
	Pos  lexer.Position
	Var  string      `@( Ident | EscapedIdent ) Eq`
	Expr *Expression `@@`
}

// ForStatement is FOR var IN list (WITH ORDINALITY|OFFSET var)?.
type ForStatement struct {
	Pos     lexer.Position
	Var     string      `"FOR" @( Ident | EscapedIdent )`
	Source  *Expression `"IN" @@`
	With    string      `( "WITH" @( "ORDINALITY" | "OFFSET" )`
	WithVar string      `  @( Ident | EscapedIdent ) )?`
}

// ReturnStatement is RETURN with its optional grouping, ordering and paging.
type ReturnStatement struct {
	Pos        lexer.Position
	Quantifier string        `"RETURN" @( "DISTINCT" | "ALL" )?`
	Star       bool          `(  @Star`
	Items      []*ReturnItem ` | @@ ( Comma @@ )* )`
	GroupBy    []*Expression `( "GROUP" "BY" @@ ( Comma @@ )* )?`
	Order      *OrderBy      `@@?`
	Offset     *Offset       `@@?`
	Limit      *Limit        `@@?`
}

// ReturnItem is expr (AS alias)?.
type ReturnItem struct {
	Pos   lexer.Position
	Expr  *Expression `@@`
	Alias string      `( "AS" @( Ident | EscapedIdent ) )?`
}

// OrderBy is ORDER BY sort specifications.
type OrderBy struct {
	Pos   lexer.Position
	Items []*SortSpec `"ORDER" "BY" @@ ( Comma @@ )*`
}

// SortSpec is expr (ASC|DESC)? (NULLS FIRST|LAST)?.
type SortSpec struct {
	Pos   lexer.Position
	Expr  *Expression `@@`
	Order string      `@( "ASCENDING" | "ASC" | "DESCENDING" | "DESC" )?`
	Nulls string      `( "NULLS" @( "FIRST" | "LAST" ) )?`
}

// Offset is OFFSET n or its synonym SKIP n.
type Offset struct {
	Pos     lexer.Position
	Keyword string     `@( "OFFSET" | "SKIP" )`
	Count   *PageValue `@@`
}

// Limit is LIMIT n.
type Limit struct {
	Pos   lexer.Position
	Count *PageValue `"LIMIT" @@`
}

// PageValue is an unsigned integer literal or a parameter.
type PageValue struct {
	Pos   lexer.Position
	Int   *string `  @Int`
	Param *string `| Dollar @( Ident | EscapedIdent )`
}

// ----------------------------------------------------------------------------
// Graph patterns
// ----------------------------------------------------------------------------

// PathPattern is (var =)? mode? path term (| path term)*.
type PathPattern struct {
	Pos          lexer.Position
	Var          string      `( @( Ident | EscapedIdent ) Eq )?`
	Mode         string      `( @( "WALK" | "TRAIL" | "SIMPLE" | "ACYCLIC" ) ( "PATH" | "PATHS" )? )?`
	Alternatives []*PathTerm `@@ ( Pipe @@ )*`
}

// PathTerm is a concatenation of path factors.
type PathTerm struct {
	Pos     lexer.Position
	Factors []*PathFactor `@@+`
}

// PathFactor is a path primary with an optional quantifier.
type PathFactor struct {
	Pos        lexer.Position
	Primary    *PathPrimary `@@`
	Quantifier *Quantifier  `@@?`
}

// PathPrimary is a node, an edge or a parenthesized path.
// Nodes are tried before parenthesized paths since both start with LParen.
type PathPrimary struct {
	Pos    lexer.Position
	Node   *NodePattern              `  @@`
	Edge   *EdgePattern              `| @@`
	Abbrev string                    `| @( LeftRightArrow | LeftArrow | RightArrow | LeftTilde | RightTilde | Tilde | Minus )`
	Paren  *ParenthesizedPathPattern `| @@`
}

// ParenthesizedPathPattern is ( (var =)? path WHERE? ).
type ParenthesizedPathPattern struct {
	Pos     lexer.Position
	Pattern *PathPattern `LParen @@`
	Where   *Expression  `( "WHERE" @@ )? RParen`
}

// NodePattern is ( var? label? (props | WHERE)? ).
type NodePattern struct {
	Pos    lexer.Position
	Filler *Filler `LParen @@ RParen`
}

// EdgePattern is a full edge: left bracket arrow, filler, right bracket arrow.
// Left is one of `<-`, `<~`, `-` or `~`; Right is one of `->`, `~>`, `-` or `~`.
type EdgePattern struct {
	Pos    lexer.Position
	Left   string  `@( LeftArrow | LeftTilde | Minus | Tilde )`
	Filler *Filler `LBracket @@ RBracket`
	Right  string  `@( RightArrow | RightTilde | Minus | Tilde )`
}

// Filler is the content of a node or edge pattern.
type Filler struct {
	Pos   lexer.Position
	Var   string        `@( Ident | EscapedIdent )?`
	Label *LabelExpr    `( ( Colon | "IS" ) @@ )?`
	Props *PropertySpec `(  @@`
	Where *Expression   ` | "WHERE" @@ )?`
}

// LabelExpr is label terms joined by |.
type LabelExpr struct {
	Pos   lexer.Position
	Terms []*LabelTerm `@@ ( Pipe @@ )*`
}

// LabelTerm is label factors joined by &.
type LabelTerm struct {
	Pos     lexer.Position
	Factors []*LabelFactor `@@ ( Amp @@ )*`
}

// LabelFactor is a possibly negated label primary.
type LabelFactor struct {
	Pos   lexer.Position
	Not   bool       `@Bang?`
	Name  string     `(  @( Ident | EscapedIdent )`
	Any   bool       ` | @Percent`
	Paren *LabelExpr ` | LParen @@ RParen )`
}

// PropertySpec is {key: value, ...}.
type PropertySpec struct {
	Pos   lexer.Position
	Pairs []*PropertyPair `LBrace ( @@ ( Comma @@ )* )? RBrace`
}

// PropertyPair is key: value.
type PropertyPair struct {
	Pos   lexer.Position
	Key   string      `@( Ident | EscapedIdent ) Colon`
	Value *Expression `@@`
}

// Quantifier is *, +, ? or {low, high}.
type Quantifier struct {
	Pos      lexer.Position
	Star     bool    `  @Star`
	Plus     bool    `| @Plus`
	Question bool    `| @Question`
	Low      *string `| LBrace @Int?`
	Comma    bool    `  @Comma?`
	High     *string `  @Int? RBrace`
}

// ----------------------------------------------------------------------------
// Expressions
//
// Precedence (lowest to highest): OR/XOR, AND, NOT, IS, comparison,
// concatenation, additive, multiplicative, unary, property reference.
// ----------------------------------------------------------------------------

// Expression is the top-level expression type (OR / XOR).
type Expression struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *AndExpr  `@@`
	Right  []*OrTerm `@@*`
}

// OrTerm is an OR or XOR operand.
type OrTerm struct {
	Pos  lexer.Position
	Op   string   `@( "OR" | "XOR" )`
	Expr *AndExpr `@@`
}

// AndExpr handles AND.
type AndExpr struct {
	Pos   lexer.Position
	Left  *NotExpr   `@@`
	Right []*NotExpr `( "AND" @@ )*`
}

// NotExpr handles NOT.
type NotExpr struct {
	Pos  lexer.Position
	Not  bool    `@"NOT"?`
	Expr *IsExpr `@@`
}

// IsExpr handles IS [NOT] NULL|TRUE|FALSE|UNKNOWN.
type IsExpr struct {
	Pos   lexer.Position
	Expr  *ComparisonExpr `@@`
	Is    bool            `( @"IS"`
	IsNot bool            `  @"NOT"?`
	Value string          `  @( "NULL" | "TRUE" | "FALSE" | "UNKNOWN" ) )?`
}

// ComparisonExpr is a single, non-chained comparison.
type ComparisonExpr struct {
	Pos   lexer.Position
	Left  *ConcatExpr `@@`
	Op    string      `( @( NotEqual | LessEqual | GreaterEqual | Eq | Less | Greater )`
	Right *ConcatExpr `  @@ )?`
}

// ConcatExpr handles ||.
type ConcatExpr struct {
	Pos   lexer.Position
	Left  *AddExpr   `@@`
	Right []*AddExpr `( Concat @@ )*`
}

// AddExpr handles + and -.
type AddExpr struct {
	Pos   lexer.Position
	Left  *MulExpr   `@@`
	Right []*AddTerm `@@*`
}

// AddTerm is a + or - operand.
type AddTerm struct {
	Pos  lexer.Position
	Op   string   `@( Plus | Minus )`
	Expr *MulExpr `@@`
}

// MulExpr handles * and /.
type MulExpr struct {
	Pos   lexer.Position
	Left  *UnaryExpr `@@`
	Right []*MulTerm `@@*`
}

// MulTerm is a * or / operand.
type MulTerm struct {
	Pos  lexer.Position
	Op   string     `@( Star | Slash )`
	Expr *UnaryExpr `@@`
}

// UnaryExpr handles unary + and -.
type UnaryExpr struct {
	Pos  lexer.Position
	Op   string       `@( Plus | Minus )?`
	Expr *PostfixExpr `@@`
}

// PostfixExpr is a primary followed by property references.
type PostfixExpr struct {
	Pos        lexer.Position
	Primary    *Primary `@@`
	Properties []string `( Dot @( Ident | EscapedIdent ) )*`
}

// Primary is the base expression type.
type Primary struct {
	Pos       lexer.Position
	Parameter *string       `  Dollar @( Ident | EscapedIdent | Int )`
	CountStar bool          `| @( "COUNT" LParen Star RParen )`
	Case      *CaseExpr     `| @@`
	Call      *FunctionCall `| @@`
	Current   string        `| @( "CURRENT_DATE" | "CURRENT_TIME" | "CURRENT_TIMESTAMP" )`
	Literal   *Literal      `| @@`
	Paren     *Expression   `| LParen @@ RParen`
	Variable  string        `| @( Ident | EscapedIdent )`
}

// FunctionCall is a built-in function applied to arguments.
type FunctionCall struct {
	Pos        lexer.Position
	Name       string        `@Function`
	Quantifier string        `LParen @( "DISTINCT" | "ALL" )?`
	Args       []*Expression `( @@ ( Comma @@ )* )? RParen`
}

// Literal is a constant value.
type Literal struct {
	Pos      lexer.Position
	Null     bool             `  @"NULL"`
	True     bool             `| @"TRUE"`
	False    bool             `| @"FALSE"`
	Unknown  bool             `| @"UNKNOWN"`
	Float    *string          `| @Float`
	Int      *string          `| @( Int | HexInt | OctalInt | BinaryInt )`
	String   *string          `| @String`
	Temporal *TemporalLiteral `| @@`
	List     *ListLiteral     `| @@`
	Record   *RecordLiteral   `| @@`
}

// TemporalLiteral is DATE '...', TIME '...', DATETIME '...' or DURATION '...'.
type TemporalLiteral struct {
	Pos   lexer.Position
	Type  string `@( "DATE" | "TIME" | "DATETIME" | "TIMESTAMP" | "DURATION" )`
	Value string `@String`
}

// ListLiteral is LIST? [expr, ...].
type ListLiteral struct {
	Pos   lexer.Position
	Items []*Expression `( "LIST" | "ARRAY" )? LBracket ( @@ ( Comma @@ )* )? RBracket`
}

// RecordLiteral is RECORD? {key: value, ...}.
type RecordLiteral struct {
	Pos    lexer.Position
	Fields []*PropertyPair `"RECORD"? LBrace ( @@ ( Comma @@ )* )? RBrace`
}

// CaseExpr is CASE expr? (WHEN expr THEN expr)+ (ELSE expr)? END.
type CaseExpr struct {
	Pos   lexer.Position
	Input *Expression `"CASE" ( (?! "WHEN" ) @@ )?`
	Whens []*CaseWhen `@@+`
	Else  *Expression `( "ELSE" @@ )?`
	End   bool        `@"END"`
}

// CaseWhen is WHEN condition THEN result.
type CaseWhen struct {
	Pos  lexer.Position
	When *Expression `"WHEN" @@`
	Then *Expression `"THEN" @@`
}
