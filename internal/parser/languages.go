package parser

// LanguageConfig parameterises the tree-sitter code plugin for one language.
type LanguageConfig struct {
	// ID is the language identifier ("typescript", "go", ...).
	ID string

	// Extensions recognised for this language, lowercase with dot.
	Extensions []string

	// EntityNodeTypes are the syntax node types that become entities.
	EntityNodeTypes []string

	// FunctionNodeTypes are the node types that open a function scope.
	// Variable declarations encountered inside one are suppressed so local
	// bindings don't flood the entity list.
	FunctionNodeTypes []string
}

var typescriptConfig = LanguageConfig{
	ID:         "typescript",
	Extensions: []string{".ts"},
	EntityNodeTypes: []string{
		"function_declaration",
		"class_declaration",
		"interface_declaration",
		"type_alias_declaration",
		"enum_declaration",
		"lexical_declaration",
		"variable_declaration",
		"method_definition",
		"public_field_definition",
		"pair",
	},
	FunctionNodeTypes: []string{
		"function_declaration", "function_expression", "arrow_function",
		"method_definition", "generator_function_declaration",
	},
}

var tsxConfig = LanguageConfig{
	ID:                "tsx",
	Extensions:        []string{".tsx"},
	EntityNodeTypes:   typescriptConfig.EntityNodeTypes,
	FunctionNodeTypes: typescriptConfig.FunctionNodeTypes,
}

var javascriptConfig = LanguageConfig{
	ID:         "javascript",
	Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
	EntityNodeTypes: []string{
		"function_declaration",
		"class_declaration",
		"lexical_declaration",
		"variable_declaration",
		"method_definition",
		"field_definition",
		"pair",
	},
	FunctionNodeTypes: []string{
		"function_declaration", "function_expression", "arrow_function",
		"method_definition", "generator_function_declaration",
	},
}

var pythonConfig = LanguageConfig{
	ID:         "python",
	Extensions: []string{".py"},
	EntityNodeTypes: []string{
		"function_definition",
		"class_definition",
	},
	FunctionNodeTypes: []string{"function_definition", "lambda"},
}

var goConfig = LanguageConfig{
	ID:         "go",
	Extensions: []string{".go"},
	EntityNodeTypes: []string{
		"function_declaration",
		"method_declaration",
		"type_declaration",
		"var_declaration",
		"const_declaration",
	},
	FunctionNodeTypes: []string{"function_declaration", "method_declaration", "func_literal"},
}

var rustConfig = LanguageConfig{
	ID:         "rust",
	Extensions: []string{".rs"},
	EntityNodeTypes: []string{
		"function_item",
		"struct_item",
		"enum_item",
		"impl_item",
		"trait_item",
		"mod_item",
		"const_item",
		"static_item",
		"type_item",
	},
	FunctionNodeTypes: []string{"function_item", "closure_expression"},
}

var javaConfig = LanguageConfig{
	ID:         "java",
	Extensions: []string{".java"},
	EntityNodeTypes: []string{
		"class_declaration",
		"method_declaration",
		"interface_declaration",
		"enum_declaration",
		"field_declaration",
		"constructor_declaration",
		"annotation_type_declaration",
	},
	FunctionNodeTypes: []string{"method_declaration", "constructor_declaration", "lambda_expression"},
}

var cConfig = LanguageConfig{
	ID:         "c",
	Extensions: []string{".c", ".h"},
	EntityNodeTypes: []string{
		"function_definition",
		"struct_specifier",
		"enum_specifier",
		"union_specifier",
		"type_definition",
		"declaration",
	},
	FunctionNodeTypes: []string{"function_definition"},
}

var cppConfig = LanguageConfig{
	ID:         "cpp",
	Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"},
	EntityNodeTypes: []string{
		"function_definition",
		"class_specifier",
		"struct_specifier",
		"enum_specifier",
		"namespace_definition",
		"template_declaration",
		"declaration",
		"type_definition",
	},
	FunctionNodeTypes: []string{"function_definition", "lambda_expression"},
}

var rubyConfig = LanguageConfig{
	ID:         "ruby",
	Extensions: []string{".rb"},
	EntityNodeTypes: []string{
		"method",
		"singleton_method",
		"class",
		"module",
	},
	FunctionNodeTypes: []string{"method", "singleton_method", "lambda", "block"},
}

var csharpConfig = LanguageConfig{
	ID:         "csharp",
	Extensions: []string{".cs"},
	EntityNodeTypes: []string{
		"method_declaration",
		"class_declaration",
		"interface_declaration",
		"enum_declaration",
		"struct_declaration",
		"namespace_declaration",
		"property_declaration",
		"constructor_declaration",
		"field_declaration",
	},
	FunctionNodeTypes: []string{"method_declaration", "constructor_declaration", "lambda_expression"},
}

var phpConfig = LanguageConfig{
	ID:         "php",
	Extensions: []string{".php"},
	EntityNodeTypes: []string{
		"function_definition",
		"class_declaration",
		"method_declaration",
		"interface_declaration",
		"trait_declaration",
		"enum_declaration",
		"namespace_definition",
	},
	FunctionNodeTypes: []string{"function_definition", "method_declaration", "anonymous_function_creation_expression"},
}

var allConfigs = []*LanguageConfig{
	&typescriptConfig,
	&tsxConfig,
	&javascriptConfig,
	&pythonConfig,
	&goConfig,
	&rustConfig,
	&javaConfig,
	&cConfig,
	&cppConfig,
	&rubyConfig,
	&csharpConfig,
	&phpConfig,
}

// languageConfigForExt returns the config owning an extension, or nil.
func languageConfigForExt(ext string) *LanguageConfig {
	for _, c := range allConfigs {
		for _, e := range c.Extensions {
			if e == ext {
				return c
			}
		}
	}
	return nil
}

// allCodeExtensions returns every extension claimed by a language config.
func allCodeExtensions() []string {
	var exts []string
	for _, c := range allConfigs {
		exts = append(exts, c.Extensions...)
	}
	return exts
}

// entityTypeForNode maps a tree-sitter node type to the canonical entity
// type tag. Unknown node types pass through verbatim.
func entityTypeForNode(nodeType string) string {
	switch nodeType {
	case "function_declaration", "function_definition", "function_item":
		return "function"
	case "method_declaration", "method_definition", "method", "singleton_method",
		"constructor_declaration":
		return "method"
	case "class_declaration", "class_definition", "class", "class_specifier":
		return "class"
	case "interface_declaration":
		return "interface"
	case "type_alias_declaration", "type_declaration", "type_item", "type_definition":
		return "type"
	case "enum_declaration", "enum_item", "enum_specifier":
		return "enum"
	case "struct_item", "struct_declaration", "struct_specifier", "union_specifier":
		return "struct"
	case "impl_item":
		return "impl"
	case "trait_item", "trait_declaration":
		return "trait"
	case "mod_item", "module", "namespace_definition", "namespace_declaration":
		return "module"
	case "export_statement":
		return "export"
	case "lexical_declaration", "variable_declaration", "var_declaration", "declaration":
		return "variable"
	case "const_declaration", "const_item":
		return "constant"
	case "static_item":
		return "static"
	case "field_declaration", "field_definition", "public_field_definition",
		"property_declaration":
		return "property"
	case "annotation_type_declaration":
		return "interface"
	case "template_declaration":
		return "type"
	default:
		return nodeType
	}
}
