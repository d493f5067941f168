package introspect

// Builtins returns a registry preloaded with the metadata the compiler needs
// for the java.lang fallback namespace, the collection contracts, and the
// core of the target scene-graph object model. A real deployment extends it
// with tables generated from the full object model (see LoadFile).
func Builtins() *Registry {
	r := NewRegistry()
	for _, c := range builtinClasses() {
		r.Register(c)
	}
	return r
}

func typ(name string, args ...Type) Type {
	return Type{Name: name, TypeArguments: args}
}

func named(name string, t Type) Parameter {
	return Parameter{Name: name, Type: t, Named: true}
}

func arg(name string, t Type) Parameter {
	return Parameter{Name: name, Type: t}
}

func setter(name string, params ...Parameter) Method {
	return Method{Name: name, ReturnType: typ("void"), Parameters: params}
}

func staticSetter(name string, params ...Parameter) Method {
	return Method{Name: name, ReturnType: typ("void"), Parameters: params, IsStatic: true}
}

func getter(name string, ret Type) Method {
	return Method{Name: name, ReturnType: ret}
}

func valueOf(owner string, paramType Type) Method {
	return Method{
		Name:       "valueOf",
		ReturnType: typ(owner),
		Parameters: []Parameter{arg("value", paramType)},
		IsStatic:   true,
	}
}

func wrapper(name, primitive string) *Class {
	return &Class{
		Name:       name,
		SuperClass: "java.lang.Object",
		Methods:    []Method{valueOf(name, typ("java.lang.String"))},
		Constructors: []Constructor{
			{Parameters: []Parameter{named("value", typ(primitive))}},
		},
	}
}

func enumClass(name string, constants ...string) *Class {
	c := &Class{Name: name, SuperClass: "java.lang.Object", Kind: ClassKindEnum}
	for _, constant := range constants {
		c.Fields = append(c.Fields, Field{
			Name:     constant,
			Type:     typ(name),
			IsStatic: true,
			IsFinal:  true,
		})
	}
	return c
}

func builtinClasses() []*Class {
	stringT := typ("java.lang.String")
	nodeT := typ("javafx.scene.Node")
	insetsT := typ("javafx.geometry.Insets")
	observable := func(elem Type) Type {
		return typ("javafx.collections.ObservableList", elem)
	}

	return []*Class{
		{Name: "java.lang.Object", Constructors: []Constructor{{}}},
		{
			Name:       "java.lang.String",
			SuperClass: "java.lang.Object",
			Constructors: []Constructor{
				{Parameters: []Parameter{arg("original", stringT)}},
			},
			Methods: []Method{valueOf("java.lang.String", typ("java.lang.Object"))},
		},
		{Name: "java.lang.Number", SuperClass: "java.lang.Object", IsAbstract: true},
		wrapper("java.lang.Boolean", "boolean"),
		wrapper("java.lang.Byte", "byte"),
		wrapper("java.lang.Character", "char"),
		wrapper("java.lang.Short", "short"),
		wrapper("java.lang.Integer", "int"),
		wrapper("java.lang.Long", "long"),
		wrapper("java.lang.Float", "float"),
		wrapper("java.lang.Double", "double"),

		{Name: "java.util.Collection", Kind: ClassKindInterface, TypeParameters: []string{"E"}},
		{
			Name:           "java.util.List",
			Kind:           ClassKindInterface,
			Interfaces:     []string{"java.util.Collection"},
			TypeParameters: []string{"E"},
		},
		{Name: "java.util.ResourceBundle", SuperClass: "java.lang.Object", IsAbstract: true},
		{
			Name:           "javafx.collections.ObservableList",
			Kind:           ClassKindInterface,
			Interfaces:     []string{"java.util.List"},
			TypeParameters: []string{"E"},
		},

		{Name: "javafx.event.Event", SuperClass: "java.lang.Object"},
		{Name: "javafx.event.ActionEvent", SuperClass: "javafx.event.Event"},
		{
			Name:           "javafx.event.EventHandler",
			Kind:           ClassKindInterface,
			TypeParameters: []string{"T"},
			Methods: []Method{
				{
					Name:       "handle",
					ReturnType: typ("void"),
					Parameters: []Parameter{arg("event", typ("T"))},
					IsAbstract: true,
				},
			},
		},

		{
			Name:       "javafx.scene.Node",
			SuperClass: "java.lang.Object",
			IsAbstract: true,
			Methods: []Method{
				setter("setId", arg("id", stringT)),
				setter("setStyle", arg("style", stringT)),
				setter("setOpacity", arg("opacity", typ("double"))),
				setter("setVisible", arg("visible", typ("boolean"))),
				getter("getStyleClass", observable(stringT)),
			},
		},
		{Name: "javafx.scene.Parent", SuperClass: "javafx.scene.Node", IsAbstract: true},
		{
			Name:         "javafx.scene.Group",
			SuperClass:   "javafx.scene.Parent",
			Constructors: []Constructor{{}},
			Methods: []Method{
				getter("getChildren", observable(nodeT)),
			},
		},
		{Name: "javafx.scene.Scene", SuperClass: "java.lang.Object"},

		{
			Name:       "javafx.scene.layout.Region",
			SuperClass: "javafx.scene.Parent",
			Methods: []Method{
				setter("setPrefWidth", arg("value", typ("double"))),
				setter("setPrefHeight", arg("value", typ("double"))),
				setter("setMinWidth", arg("value", typ("double"))),
				setter("setMaxWidth", arg("value", typ("double"))),
				setter("setPadding", arg("value", insetsT)),
			},
		},
		{
			Name:         "javafx.scene.layout.Pane",
			SuperClass:   "javafx.scene.layout.Region",
			Constructors: []Constructor{{}},
			Methods: []Method{
				getter("getChildren", observable(nodeT)),
			},
		},
		{
			Name:       "javafx.scene.layout.HBox",
			SuperClass: "javafx.scene.layout.Pane",
			Constructors: []Constructor{
				{},
				{Parameters: []Parameter{named("spacing", typ("double"))}},
			},
			Methods: []Method{
				setter("setSpacing", arg("value", typ("double"))),
				staticSetter("setHgrow", arg("child", nodeT), arg("value", typ("javafx.scene.layout.Priority"))),
				staticSetter("setMargin", arg("child", nodeT), arg("value", insetsT)),
			},
		},
		{
			Name:       "javafx.scene.layout.VBox",
			SuperClass: "javafx.scene.layout.Pane",
			Constructors: []Constructor{
				{},
				{Parameters: []Parameter{named("spacing", typ("double"))}},
			},
			Methods: []Method{
				setter("setSpacing", arg("value", typ("double"))),
				staticSetter("setVgrow", arg("child", nodeT), arg("value", typ("javafx.scene.layout.Priority"))),
				staticSetter("setMargin", arg("child", nodeT), arg("value", insetsT)),
			},
		},
		{
			Name:         "javafx.scene.layout.GridPane",
			SuperClass:   "javafx.scene.layout.Pane",
			Constructors: []Constructor{{}},
			Methods: []Method{
				setter("setHgap", arg("value", typ("double"))),
				setter("setVgap", arg("value", typ("double"))),
				staticSetter("setRowIndex", arg("child", nodeT), arg("value", typ("int"))),
				staticSetter("setColumnIndex", arg("child", nodeT), arg("value", typ("int"))),
				staticSetter("setMargin", arg("child", nodeT), arg("value", insetsT)),
			},
		},
		enumClass("javafx.scene.layout.Priority", "ALWAYS", "SOMETIMES", "NEVER"),

		{
			Name:       "javafx.scene.control.Labeled",
			SuperClass: "javafx.scene.layout.Region",
			IsAbstract: true,
			Methods: []Method{
				setter("setText", arg("text", stringT)),
			},
		},
		{
			Name:       "javafx.scene.control.Label",
			SuperClass: "javafx.scene.control.Labeled",
			Constructors: []Constructor{
				{},
				{Parameters: []Parameter{named("text", stringT)}},
			},
		},
		{
			Name:       "javafx.scene.control.Button",
			SuperClass: "javafx.scene.control.Labeled",
			Constructors: []Constructor{
				{},
				{Parameters: []Parameter{named("text", stringT)}},
			},
			Methods: []Method{
				setter("setOnAction", arg("value", typ("javafx.event.EventHandler", typ("javafx.event.ActionEvent")))),
			},
		},
		{
			Name:           "javafx.scene.control.ComboBox",
			SuperClass:     "javafx.scene.layout.Region",
			TypeParameters: []string{"T"},
			Constructors:   []Constructor{{}},
			Methods: []Method{
				getter("getItems", observable(typ("T"))),
			},
		},

		{
			Name:       "javafx.geometry.Insets",
			SuperClass: "java.lang.Object",
			Constructors: []Constructor{
				{Parameters: []Parameter{
					named("topRightBottomLeft", typ("double")),
				}},
				{Parameters: []Parameter{
					named("top", typ("double")),
					named("right", typ("double")),
					named("bottom", typ("double")),
					named("left", typ("double")),
				}},
			},
		},
		{
			Name:       "javafx.scene.paint.Color",
			SuperClass: "java.lang.Object",
			Fields: []Field{
				{Name: "RED", Type: typ("javafx.scene.paint.Color"), IsStatic: true, IsFinal: true},
				{Name: "GREEN", Type: typ("javafx.scene.paint.Color"), IsStatic: true, IsFinal: true},
				{Name: "BLUE", Type: typ("javafx.scene.paint.Color"), IsStatic: true, IsFinal: true},
				{Name: "BLACK", Type: typ("javafx.scene.paint.Color"), IsStatic: true, IsFinal: true},
				{Name: "WHITE", Type: typ("javafx.scene.paint.Color"), IsStatic: true, IsFinal: true},
			},
			Methods: []Method{valueOf("javafx.scene.paint.Color", stringT)},
		},
		{
			Name:       "javafx.scene.image.Image",
			SuperClass: "java.lang.Object",
			Constructors: []Constructor{
				{Parameters: []Parameter{arg("url", stringT)}},
			},
		},
	}
}
