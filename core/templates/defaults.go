package templates

// Default returns a fresh catalog seeded with the built-in templates.
func Default() *Catalog {
	c := NewCatalog()
	for _, t := range builtins() {
		if err := c.Register(t); err != nil {
			panic("templates: invalid built-in template: " + err.Error())
		}
	}
	return c
}

func builtins() []Template {
	return []Template{
		New("two-sum").
			Name("Two Sum (HashMap)").
			Description("Find two numbers that add up to target using HashMap").
			Category("array").
			Complexity("O(n) time, O(n) space").
			Keywords("array", "target", "sum", "two", "pair", "complement").
			BonusAll(50, "hashmap", "complement").
			Body(twoSumBody).
			Build(),
		New("binary-search").
			Name("Binary Search").
			Description("Search in sorted array with O(log n) complexity").
			Category("search").
			Complexity("O(log n) time, O(1) space").
			Keywords("sorted", "search", "mid", "left", "right", "binary", "log").
			BonusAll(50, "while", "mid").
			Body(binarySearchBody).
			Build(),
		New("bfs").
			Name("Breadth-First Search (BFS)").
			Description("Level-by-level traversal using Queue").
			Category("graph").
			Complexity("O(n) time, O(w) space").
			Keywords("queue", "level", "treenode", "breadth", "bfs", "linkedlist").
			BonusAll(50, "queue", "poll").
			Body(bfsBody).
			Build(),
		New("dfs").
			Name("Depth-First Search (DFS)").
			Description("Recursive tree/graph traversal").
			Category("graph").
			Complexity("O(n) time, O(h) space").
			Keywords("recursive", "treenode", "depth", "traversal", "dfs", "preorder").
			BonusAny(40, "recursive", "stack").
			Body(dfsBody).
			Build(),
		New("sliding-window").
			Name("Sliding Window").
			Description("Efficient subarray/substring problems").
			Category("array").
			Complexity("O(n) time, O(1) space").
			Keywords("substring", "subarray", "window", "left", "right", "sliding", "two pointer").
			BonusAll(40, "left", "right").
			Body(slidingWindowBody).
			Build(),
		New("quick-sort").
			Name("Quick Sort").
			Description("Divide and conquer sorting algorithm").
			Category("sorting").
			Complexity("O(n log n) average, O(n²) worst").
			Keywords("sort", "partition", "pivot", "divide", "conquer", "quick").
			Body(quickSortBody).
			Build(),
		New("dynamic-programming").
			Name("Dynamic Programming (Fibonacci)").
			Description("DP approach with memoization").
			Category("dynamic-programming").
			Complexity("O(n) time, O(n) space").
			Keywords("dp", "memoization", "fibonacci", "dynamic", "programming", "tabulation").
			Body(dynamicProgrammingBody).
			Build(),
	}
}

const twoSumBody = `// Two Sum Algorithm - O(n) time, O(n) space
Map<Integer, Integer> map = new HashMap<>();
for (int i = 0; i < nums.length; i++) {
    int complement = target - nums[i];
    if (map.containsKey(complement)) {
        return new int[]{map.get(complement), i};
    }
    map.put(nums[i], i);
}
return new int[]{-1, -1}; // Not found`

const binarySearchBody = `// Binary Search - O(log n) time, O(1) space
int left = 0, right = nums.length - 1;
while (left <= right) {
    int mid = left + (right - left) / 2;
    if (nums[mid] == target) {
        return mid; // Found target
    } else if (nums[mid] < target) {
        left = mid + 1; // Search right half
    } else {
        right = mid - 1; // Search left half
    }
}
return -1; // Target not found`

const bfsBody = `// BFS Traversal - O(n) time, O(w) space where w is max width
Queue<TreeNode> queue = new LinkedList<>();
List<Integer> result = new ArrayList<>();
if (root != null) queue.offer(root);

while (!queue.isEmpty()) {
    TreeNode current = queue.poll();
    result.add(current.val);

    // Add children to queue
    if (current.left != null) queue.offer(current.left);
    if (current.right != null) queue.offer(current.right);
}
return result;`

const dfsBody = `// DFS Traversal - O(n) time, O(h) space where h is height
public List<Integer> dfs(TreeNode root) {
    List<Integer> result = new ArrayList<>();
    dfsHelper(root, result);
    return result;
}

private void dfsHelper(TreeNode root, List<Integer> result) {
    if (root == null) return;

    result.add(root.val); // Preorder: process current
    dfsHelper(root.left, result); // Traverse left
    dfsHelper(root.right, result); // Traverse right
}`

const slidingWindowBody = `// Sliding Window - O(n) time, O(1) space
int left = 0, maxLength = 0;
Map<Character, Integer> charCount = new HashMap<>();

for (int right = 0; right < s.length(); right++) {
    char rightChar = s.charAt(right);
    charCount.put(rightChar, charCount.getOrDefault(rightChar, 0) + 1);

    // Shrink window if condition violated
    while (charCount.size() > k) { // Example: k unique characters
        char leftChar = s.charAt(left);
        charCount.put(leftChar, charCount.get(leftChar) - 1);
        if (charCount.get(leftChar) == 0) {
            charCount.remove(leftChar);
        }
        left++;
    }

    maxLength = Math.max(maxLength, right - left + 1);
}
return maxLength;`

const quickSortBody = `// Quick Sort - Average O(n log n), Worst O(n²)
public void quickSort(int[] arr, int low, int high) {
    if (low < high) {
        int pivotIndex = partition(arr, low, high);
        quickSort(arr, low, pivotIndex - 1); // Sort left
        quickSort(arr, pivotIndex + 1, high); // Sort right
    }
}

private int partition(int[] arr, int low, int high) {
    int pivot = arr[high]; // Choose last element as pivot
    int i = low - 1; // Index of smaller element

    for (int j = low; j < high; j++) {
        if (arr[j] <= pivot) {
            i++;
            swap(arr, i, j);
        }
    }
    swap(arr, i + 1, high);
    return i + 1;
}`

const dynamicProgrammingBody = `// Dynamic Programming - O(n) time, O(n) space
Map<Integer, Integer> memo = new HashMap<>();

public int fibonacci(int n) {
    if (n <= 1) return n;

    // Check if already computed
    if (memo.containsKey(n)) {
        return memo.get(n);
    }

    // Compute and store result
    int result = fibonacci(n - 1) + fibonacci(n - 2);
    memo.put(n, result);
    return result;
}

// Bottom-up approach (Tabulation)
public int fibonacciIterative(int n) {
    if (n <= 1) return n;

    int[] dp = new int[n + 1];
    dp[0] = 0;
    dp[1] = 1;

    for (int i = 2; i <= n; i++) {
        dp[i] = dp[i - 1] + dp[i - 2];
    }
    return dp[n];
}`
