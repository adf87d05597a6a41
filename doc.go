// Package console provides a lightweight framework for building command-line applications. It
// features nested subcommand support, flexible flag parsing and invokable commands: plain Go
// functions whose parameters are bound from command-line input.
//
// An invokable command describes each function parameter with a [Member]. Markers on the member
// say where its value comes from:
//
//	cmd := console.MustInvokable("greet", nil,
//	    func(out console.Output, name string, yell bool) int {
//	        msg := "Hello " + name
//	        if yell {
//	            msg = strings.ToUpper(msg)
//	        }
//	        _ = out.Writeln(msg)
//	        return 0
//	    },
//	    console.Param[console.Output]("out"),
//	    console.Param[string]("name", console.Argument{}),
//	    console.Param[bool]("yell", console.Option{}),
//	)
//
// Values are produced by an ordered chain of [ValueResolver] implementations. The first resolver
// returning a value wins. Framework types such as context.Context, [Input], [Output] and
// *[Style] are passed to the function directly.
//
// The package prioritizes simplicity and ease of use, making it an ideal foundation for CLI
// applications that don't require the overhead of larger frameworks.
package console
