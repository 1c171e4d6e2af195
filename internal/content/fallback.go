package content

// fallbackChallenge returns a canned hello-world sequence for the language
// when the generation service is unavailable.
func fallbackChallenge(language, question string) *GeneratedChallenge {
	goal := question
	if goal == "" {
		goal = "Print 'Hello World' to the console"
	}

	switch language {
	case "python":
		return &GeneratedChallenge{
			Goal:     goal,
			Concepts: "Basic output, functions",
			Language: "Python",
			Sequence: []Step{
				{Correct: "def main():", Distractors: []StepOption{{Text: "function main():", Reason: "Python uses def"}}, Indent: 0, Explanation: "Define main function"},
				{Correct: `    print("Hello World")`, Distractors: []StepOption{{Text: `print "Hello World"`, Reason: "Python 3 needs parentheses"}}, Indent: 1, Explanation: "Print message"},
				{Correct: `if __name__ == "__main__":`, Distractors: []StepOption{{Text: `if __name__ == "main":`, Reason: "Should be __main__"}}, Indent: 0, Explanation: "Check if script runs directly"},
				{Correct: "    main()", Distractors: []StepOption{{Text: "main", Reason: "Need parentheses to call"}}, Indent: 1, Explanation: "Call main"},
			},
		}
	case "go":
		return &GeneratedChallenge{
			Goal:     goal,
			Concepts: "Package, imports, main function",
			Language: "Go",
			Sequence: []Step{
				{Correct: "package main", Distractors: []StepOption{{Text: "package Main", Reason: "Package names are lowercase"}}, Indent: 0, Explanation: "Package declaration"},
				{Correct: `import "fmt"`, Distractors: []StepOption{{Text: `include "fmt"`, Reason: "Go uses import"}}, Indent: 0, Explanation: "Import fmt package"},
				{Correct: "func main() {", Distractors: []StepOption{{Text: "function main() {", Reason: "Go uses func"}}, Indent: 0, Explanation: "Main function"},
				{Correct: `    fmt.Println("Hello World")`, Distractors: []StepOption{{Text: `println("Hello World")`, Reason: "Need fmt.Println"}}, Indent: 1, Explanation: "Print message"},
				{Correct: "}", Distractors: []StepOption{{Text: "};", Reason: "No semicolon after brace"}}, Indent: 0, Explanation: "Close main"},
			},
		}
	case "javascript":
		return &GeneratedChallenge{
			Goal:     goal,
			Concepts: "Console output, functions",
			Language: "JavaScript",
			Sequence: []Step{
				{Correct: "function main() {", Distractors: []StepOption{{Text: "def main() {", Reason: "JavaScript uses function"}}, Indent: 0, Explanation: "Define function"},
				{Correct: `    console.log("Hello World");`, Distractors: []StepOption{{Text: `print("Hello World");`, Reason: "JavaScript uses console.log"}}, Indent: 1, Explanation: "Output to console"},
				{Correct: "}", Distractors: []StepOption{{Text: "};", Reason: "No semicolon after function brace"}}, Indent: 0, Explanation: "Close function"},
				{Correct: "main();", Distractors: []StepOption{{Text: "main", Reason: "Need parentheses to call"}}, Indent: 0, Explanation: "Call function"},
			},
		}
	default:
		return &GeneratedChallenge{
			Goal:     goal,
			Concepts: "Basic programming",
			Language: "Generic",
			Sequence: []Step{
				{Correct: "main() {", Distractors: []StepOption{{Text: "start() {", Reason: "Main is standard"}}, Indent: 0, Explanation: "Main function"},
				{Correct: `    output("Hello World");`, Distractors: []StepOption{{Text: `display("Hello World");`, Reason: "Using output"}}, Indent: 1, Explanation: "Output message"},
				{Correct: "}", Distractors: []StepOption{{Text: "end", Reason: "Using braces"}}, Indent: 0, Explanation: "End program"},
			},
		}
	}
}
