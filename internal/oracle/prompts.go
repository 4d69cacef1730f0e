package oracle

// System prompts and tool schemas for the oracle capabilities. The tool
// schemas force structured responses; free-text answers are treated as
// upstream failures.

const extractSystemPrompt = `
You are a precision prompt constraint analyzer.

Given a prompt template, extract **all constraints** that specify what the model output must or must not do. For each constraint:
- Determine whether it's **unconditional** or **conditional**:
  - **unconditional**: This constraint applies universally to all outputs, regardless of the input content.
  - **conditional**: The prompt specifies a trigger condition that determines whether the constraint applies, and the trigger is either:
    - Expressed using clear indicators like "if ...", "when ...", "only if ...", "in case ...", or
    - Explicitly tied to detectable input features (e.g., contains specific keywords, matches a language code, exceeds a given length).
- Assign one of the following categories:
  1. Output → Specific format constraint: The output must conform to a specific file or data format (e.g., JSON, Markdown, HTML, key-value pairs, defined data structures, source code in a specific language).
  2. Output → Numerical constraint: Restrictions on output length, counts, or numerical ranges (e.g., character/word/token/sentence/paragraph counts, score values).
  3. Output → Lexical matching constraint: The output must contain, match, or adhere to a specific string pattern (e.g., selection from a predefined list, exact string match, lowercase requirement).
  4. Output → Lexical exclusion constraint: Certain words, phrases, string or character patterns are explicitly prohibited in the output.
  5. Output → Semantic inclusion constraint: The output must semantically include certain concepts, entities, or topics. (not verifiable by code)
  6. Output → Semantic exclusion constraint: The output must not semantically mention certain concepts, entities, or topics. (not verifiable by code)
  7. Output → Qualitative constraint: The output must exhibit specific non-quantitative qualities or styles (e.g., concise, academic tone, persuasive, language). (not verifiable by code)
  8. Others
- For each constraint, extract the **exact sentence** from the prompt that expresses it as "source"
- Give a short justification for the category.

Return all constraints in a structured list using the function tool.
`

const extractToolSchema = `{
  "type": "object",
  "properties": {
    "constraints": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "constraint": {"type": "string"},
          "application_type": {"type": "string", "enum": ["unconditional", "conditional"]},
          "category": {
            "type": "string",
            "enum": [
              "Output → Specific format constraint",
              "Output → Numerical constraint",
              "Output → Lexical matching constraint",
              "Output → Lexical exclusion constraint",
              "Output → Semantic inclusion constraint",
              "Output → Semantic exclusion constraint",
              "Output → Qualitative constraint",
              "Others"
            ]
          },
          "reason": {"type": "string"},
          "source": {"type": "string"}
        },
        "required": ["constraint", "application_type", "category", "reason", "source"]
      }
    }
  },
  "required": ["constraints"]
}`

const assessSystemPrompt = `
You assess ONE conditional constraint at a time.

Goal: Decide if the constraint's **condition** is objectively code-verifiable from the raw input string only.

A condition is code-verifiable iff it can be checked deterministically with string match/regex/length/keyword/numeric tests over the input text alone, requiring no semantic interpretation, intent understanding, topic inference without explicit keywords, or external knowledge.

Return ONLY via the tool call with:
- constraint (verbatim),
- condition_verifiable: true/false,
- reason,
- suggested_check (optional if verifiable).

Do not return free text.
`

const assessToolSchema = `{
  "type": "object",
  "properties": {
    "assessment": {
      "type": "object",
      "properties": {
        "constraint": {"type": "string"},
        "condition_verifiable": {"type": "boolean"},
        "reason": {"type": "string"},
        "suggested_check": {
          "type": "string",
          "description": "If verifiable, a brief suggestion for how to check it in code using only the raw input string (e.g., regex/keyword/length)."
        }
      },
      "required": ["constraint", "condition_verifiable", "reason"]
    }
  },
  "required": ["assessment"]
}`

const treeSystemPrompt = `
You are a constraint-checking logic tree generator.

Your task is to construct a single decision tree for validating model output based on a list of constraints.

Each node must include the following fields:
- conditional: true or false
- parent_ok: true or false
- constraint_category: one of the following: 'Output → Specific format constraint', 'Output → Numerical constraint', 'Output → Lexical matching constraint', 'Output → Lexical exclusion constraint', or 'result' (used in leaf nodes)
- constraint: a concise human-readable description of what is being checked. **Also clearly indicate whether this applies to the entire output or to a specific field/section.**
- source: exactly copy the 'source' field from the corresponding constraint object provided in the input constraint list.
- scope: A description of **which part of the output** this constraint applies to.
  - Use "entire output" if the constraint applies to the whole response.
  - Use specific references (e.g., "JSON field 'questions'", "markdown header", "list elements", "first sentence") when the constraint targets a **subsection or component** of a structured output.
- children: a list of exactly two children unless this is a leaf node; children must describe what happens when the constraint **is met** and **is not met**

Rules:
1. The tree must evaluate constraints **in this order**:
   - First: all **conditional** constraints
   - Then: all **unconditional** constraints
   - Within each group: order by granularity — **format → type/field → value**

2. Each conditional constraint must have two child branches:
   - If **condition is met** (parent_ok=true): its expected output behavior must be explicitly checked as a child node.
   - If **condition is not met** (parent_ok=false): evaluate all unconditional constraints in order.

3. For **every constraint node**, generate exactly **two children**:
   - One where parent_ok = true (constraint is satisfied)
   - One where parent_ok = false (constraint is not satisfied)

4. All **leaf nodes** must be of the form:
   - conditional: false
   - parent_ok: true or false
   - constraint_category: 'result'
   - constraint: 'yes' or 'no'
   - source: null
   - scope: null
   - children: empty list

5. For conditional constraints, only evaluate the condition at the current node.
`

const treeToolSchema = `{
  "type": "object",
  "properties": {
    "tree": {
      "type": "object",
      "properties": {
        "conditional": {"type": "boolean"},
        "parent_ok": {"type": "boolean"},
        "constraint_category": {"type": "string"},
        "constraint": {"type": "string"},
        "source": {"type": "string"},
        "scope": {"type": "string"},
        "children": {
          "type": "array",
          "items": {"$ref": "#/properties/tree"}
        }
      },
      "required": ["conditional", "parent_ok", "constraint_category", "constraint", "source", "scope", "children"]
    }
  },
  "required": ["tree"]
}`

const validatorSystemPrompt = `
You are a Go code generation agent specialized in logical validation.

Your task is to generate a Go function IsValidOutput(output string, input string) (bool, string, string) that checks whether the model output satisfies a set of constraints, which are organized as a decision tree. The first return value is whether the output passed; the second is a short reason when it failed (empty string when passed); the third is the violated source constraint sentence (empty string when passed or not attributable).

The decision tree follows this format:
- Each node contains:
  - conditional: whether this is a conditional constraint
  - parent_ok: whether the condition of its parent node was satisfied
  - constraint_category: the category of the constraint or 'result' if leaf node
  - constraint: a human-readable string that describes the check
  - source: the original sentence in the prompt that produced the check
  - scope: the part of the output this constraint applies to
  - children: list of child nodes

Rules:
1. Before any validation, normalize the output string to prevent false negatives from insignificant whitespace:
   - Strip leading and trailing blank lines
   - Collapse multiple consecutive blank lines into a single blank line

2. Traverse the tree starting from the root node. At each node:
   - If constraint_category == 'result', return (true, "", "") if constraint == 'yes', else return (false, <short reason>, <violation>), where <violation> is the 'source' value of the constraint node whose failed check led here.
   - If conditional == true, evaluate the *condition part only* of the constraint, against the raw input text
       - If the condition is **not directly verifiable in code**, treat it as false by default
       - If the condition is verifiable, use an if statement to decide which branch of children to check
   - If conditional == false and parent_ok == true, validate the constraint against the output
       - If it passes, recurse to children[0]; else recurse to children[1]
       - If parent_ok == false, directly recurse to children[1]

3. The output is always the raw string returned by a language model. Any structural checks (e.g., JSON parsing) or type checks must first parse this string appropriately, and malformed content must be treated as a failed check, never a panic.

4. You may define helper functions for common patterns (word count, JSON keys, exact match).

5. Only import from this list: strings, strconv, fmt, math, regexp, encoding/json, sort, unicode, unicode/utf8. The code must start with "package validator".

Output the complete Go source only. Do not include explanation outside the code.
`

const validatorToolSchema = `{
  "type": "object",
  "properties": {
    "code": {
      "type": "string",
      "description": "Complete Go source defining IsValidOutput(output string, input string) (bool, string, string)"
    }
  },
  "required": ["code"]
}`
