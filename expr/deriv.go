package expr

func (n negate) Deriv(varName string) Node {
	return negate{x: n.x.Deriv(varName)}.Simplify()
}

func (n binary) Deriv(varName string) Node {
	du := n.left.Deriv(varName)
	dv := n.right.Deriv(varName)
	switch n.op {
	case '+', '-':
		return binary{op: n.op, left: du, right: dv}.Simplify()
	case '*':
		// (uv)' = u'v + uv'
		return add(mul(du, n.right), mul(n.left, dv)).Simplify()
	case '/':
		// (u/v)' = (u'v - uv') / v^2
		num := binary{op: '-', left: mul(du, n.right), right: mul(n.left, dv)}
		return div(num, pow(n.right, number{v: 2})).Simplify()
	case '^':
		u, v := n.left, n.right
		switch {
		case !dependsOn(v, varName):
			// (u^c)' = c*u^(c-1)*u'
			cm1 := binary{op: '-', left: v, right: number{v: 1}}
			return mul(mul(v, pow(u, cm1)), du).Simplify()
		case !dependsOn(u, varName):
			// (a^v)' = a^v*ln(a)*v'
			return mul(mul(n, call{name: "ln", arg: u}), dv).Simplify()
		}
		// (u^v)' = u^v*(v'*ln(u) + v*u'/u)
		inner := add(mul(dv, call{name: "ln", arg: u}), div(mul(v, du), u))
		return mul(n, inner).Simplify()
	}
	return number{v: 0}
}

func (n call) Deriv(varName string) Node {
	u := n.arg
	du := u.Deriv(varName)
	var outer Node
	switch n.name {
	case "sin":
		outer = call{name: "cos", arg: u}
	case "cos":
		outer = negate{x: call{name: "sin", arg: u}}
	case "tan":
		outer = add(number{v: 1}, pow(call{name: "tan", arg: u}, number{v: 2}))
	case "asin":
		outer = div(number{v: 1}, call{name: "sqrt", arg: sub(number{v: 1}, pow(u, number{v: 2}))})
	case "acos":
		outer = negate{x: div(number{v: 1}, call{name: "sqrt", arg: sub(number{v: 1}, pow(u, number{v: 2}))})}
	case "atan":
		outer = div(number{v: 1}, add(number{v: 1}, pow(u, number{v: 2})))
	case "sinh":
		outer = call{name: "cosh", arg: u}
	case "cosh":
		outer = call{name: "sinh", arg: u}
	case "tanh":
		outer = sub(number{v: 1}, pow(call{name: "tanh", arg: u}, number{v: 2}))
	case "exp":
		outer = n
	case "ln", "log":
		outer = div(number{v: 1}, u)
	case "sqrt":
		outer = div(number{v: 1}, mul(number{v: 2}, n))
	case "abs":
		outer = call{name: "sign", arg: u}
	default:
		// sign is piecewise constant.
		return number{v: 0}
	}
	return mul(outer, du).Simplify()
}

// dependsOn reports whether the variable varName occurs in n.
func dependsOn(n Node, varName string) bool {
	switch v := n.(type) {
	case variable:
		return v.name == varName
	case negate:
		return dependsOn(v.x, varName)
	case binary:
		return dependsOn(v.left, varName) || dependsOn(v.right, varName)
	case call:
		return dependsOn(v.arg, varName)
	}
	return false
}

func add(a, b Node) Node { return binary{op: '+', left: a, right: b} }
func sub(a, b Node) Node { return binary{op: '-', left: a, right: b} }
func mul(a, b Node) Node { return binary{op: '*', left: a, right: b} }
func div(a, b Node) Node { return binary{op: '/', left: a, right: b} }
func pow(a, b Node) Node { return binary{op: '^', left: a, right: b} }
